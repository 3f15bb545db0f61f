package dto

import "time"

type UserResponse struct {
	UserID       string    `json:"userID"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func ToUserResponse(user interface {
	GetUserID() string
	GetUsername() string
}, registeredAt time.Time) UserResponse {
	return UserResponse{
		UserID:       user.GetUserID(),
		Username:     user.GetUsername(),
		RegisteredAt: registeredAt,
	}
}
