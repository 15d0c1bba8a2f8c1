// Package models: структуры запросов и ответов аутентификации.
package models

// Tokens — пара токенов, которую бэкенд возвращает при входе.
// Клиентский слой использует только access; refresh сохраняется как есть.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// AuthResponse — ответ POST /login.
type AuthResponse struct {
	Message string `json:"message"`
	Tokens  Tokens `json:"tokens"`
	User    User   `json:"user"`
}

// RegisterRequest — тело POST /register.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string `json:"last_name" validate:"required,min=1,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

// LoginRequest — тело POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// MessageResponse — типовой ответ бэкенда с одним сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}
