package entity

import "time"

// Session is the single authenticated identity held by the app. It is the
// only record persisted locally, under the well-known storage key.
type Session struct {
	UserID       string    `json:"userId"`
	DisplayName  string    `json:"name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"number"`
	AuthToken    string    `json:"token"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAuthenticated is derived: a session authenticates iff it holds a token.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.AuthToken != ""
}
