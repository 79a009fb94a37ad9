package dto

import (
	"time"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
)

// UserResponse is the public view of a user. It never carries the password
// or the email verification code.
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Company         *string   `json:"company"`
	Language        string    `json:"language"`
	EmailIsVerified bool      `json:"emailIsVerified"`
	ImageURL        *string   `json:"imageUrl"`
	Source          string    `json:"source"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:              user.UserID,
		Email:           user.Email,
		Name:            user.Name,
		Company:         user.Company,
		Language:        user.Language,
		EmailIsVerified: user.EmailIsVerified,
		ImageURL:        user.ImageURL,
		Source:          string(user.Source),
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}
