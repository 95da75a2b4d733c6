package dto

import (
	"time"

	"book-weaver-api/internal/domain/entity"
)

// UserResponse 用户响应
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Credits   int       `json:"credits"`
	BirthDate string    `json:"birth_date,omitempty"`
	BookCount int       `json:"book_count"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse 转换用户实体为响应
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Credits:   u.Credits,
		BirthDate: u.BirthDate,
		BookCount: len(u.Books),
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses 批量转换
func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
