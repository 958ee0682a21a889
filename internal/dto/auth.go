package dto

import "github.com/Finger-Lab/olgacolor-back/internal/core/domain"

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the API shape of a user.
type UserResponse struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain User to its API shape.
func ToUserResponse(d *domain.User) UserResponse {
	return UserResponse{
		UserID: d.UserID,
		Name:   d.Name,
		Email:  d.Email,
	}
}
