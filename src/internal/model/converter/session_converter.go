package converter

import (
	"time"

	"github.com/Empire688682/chipsub-mobile/src/internal/entity"
	"github.com/Empire688682/chipsub-mobile/src/internal/model"
)

func AuthToSession(data *model.UserData, token string) *entity.Session {
	return &entity.Session{
		UserID:       data.UserID,
		DisplayName:  data.Name,
		Email:        data.Email,
		MobileNumber: data.Number,
		AuthToken:    token,
		CreatedAt:    time.Now(),
	}
}
