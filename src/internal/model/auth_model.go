package model

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Number   string `json:"number" validate:"required,len=11,numeric"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email,max=100"`
}

// UserData is the profile object the auth backend returns as finalUserData.
type UserData struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Number string `json:"number"`
}

// AuthResponse is the wire shape of login and register responses.
type AuthResponse struct {
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	Token         string    `json:"token"`
	FinalUserData *UserData `json:"finalUserData"`
}

type AckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
