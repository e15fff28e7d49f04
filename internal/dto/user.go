package dto

import (
	"github.com/mrnoori/projecthub/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ToUserDTO converts a User model to UserDTO. The email is only exposed
// on the caller's own profile.
func ToUserDTO(user models.User, includeEmail bool) UserDTO {
	dto := UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
	if includeEmail {
		dto.Email = user.Email
	}
	return dto
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user, false)
	}
	return dtos
}
