package models

import "shortboard/pkg/roles"

type User struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Role     roles.Role `json:"role"`
}

type CreateUserRequest struct {
	Username string     `json:"username" binding:"required"`
	Role     roles.Role `json:"role" binding:"required"`
}
