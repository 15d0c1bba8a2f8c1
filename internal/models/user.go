// Package models содержит доменные структуры клиентского слоя VisionFlow.
//
// Бэкенд отдаёт поля то в snake_case, то в camelCase (исторический дрейф:
// /login отдаёт first_name, /profile — firstName). Нормализация выполняется
// один раз, на границе API: каждая структура принимает оба варианта в
// UnmarshalJSON и дальше по коду существует только в одном виде.
package models

import "encoding/json"

// Роли пользователя. Роль определяет доступные разделы приложения.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User представляет пользователя с точки зрения клиентского слоя.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// IsAdmin сообщает, имеет ли пользователь роль администратора.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName возвращает имя и фамилию одной строкой.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

type userWire struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	FirstNameAlt string `json:"firstName"`
	LastName     string `json:"last_name"`
	LastNameAlt  string `json:"lastName"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
	CreatedAtAlt string `json:"createdAt"`
}

// UnmarshalJSON принимает оба варианта написания полей.
func (u *User) UnmarshalJSON(data []byte) error {
	var w userWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	u.ID = w.ID
	u.Email = w.Email
	u.FirstName = coalesce(w.FirstName, w.FirstNameAlt)
	u.LastName = coalesce(w.LastName, w.LastNameAlt)
	u.Role = w.Role
	u.CreatedAt = coalesce(w.CreatedAt, w.CreatedAtAlt)
	return nil
}

// Profile — ответ GET /profile: пользователь плюс счётчик его детекций.
type Profile struct {
	User
	TotalDetections int `json:"total_detections"`
}

type profileWire struct {
	userWire
	TotalDetections    int `json:"total_detections"`
	TotalDetectionsAlt int `json:"totalDetections"`
}

// UnmarshalJSON принимает оба варианта написания полей.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var w profileWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := p.User.UnmarshalJSON(data); err != nil {
		return err
	}
	p.TotalDetections = w.TotalDetections
	if p.TotalDetections == 0 {
		p.TotalDetections = w.TotalDetectionsAlt
	}
	return nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
