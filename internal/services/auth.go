// Package services: аутентификация — регистрация, вход, выход.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/api"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/sl"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/session"
)

// Auth — сервис аутентификации. Вход записывает токен и пользователя
// в сессию строго через session.Store.
type Auth struct {
	state
	log      *slog.Logger
	client   *api.Client
	sessions *session.Store
	notify   Notifier
	validate *validator.Validate
}

// NewAuth создаёт сервис аутентификации.
func NewAuth(log *slog.Logger, client *api.Client, sessions *session.Store, notify Notifier) *Auth {
	return &Auth{
		log:      log,
		client:   client,
		sessions: sessions,
		notify:   notify,
		validate: validator.New(),
	}
}

// Register создаёт учётную запись. Поля проверяются до отправки.
func (a *Auth) Register(ctx context.Context, firstName, lastName, email, password string) (*models.MessageResponse, error) {
	const op = "services.Auth.Register"

	a.begin()
	defer a.done()
	log := a.log.With(sl.Op(op))

	req := models.RegisterRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	}
	if err := a.validate.Struct(req); err != nil {
		msg := validationMessage(err)
		a.fail(msg)
		a.notify.Error(msg)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var resp models.MessageResponse
	if err := a.client.Post(ctx, "/register", req, &resp); err != nil {
		msg := normalize(err, "Registration failed")
		log.Error("registration failed", sl.Err(err))
		a.fail(msg)
		a.notify.Error(msg)
		return nil, err
	}

	log.Info("registration succeeded", slog.String("email", email))
	a.notify.Success(resp.Message)
	return &resp, nil
}

// Login выполняет вход и сохраняет сессию. Чтение сессии сразу после
// возврата наблюдает новые значения.
func (a *Auth) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	const op = "services.Auth.Login"

	a.begin()
	defer a.done()
	log := a.log.With(sl.Op(op))

	req := models.LoginRequest{Email: email, Password: password}
	if err := a.validate.Struct(req); err != nil {
		msg := validationMessage(err)
		a.fail(msg)
		a.notify.Error(msg)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var resp models.AuthResponse
	if err := a.client.Post(ctx, "/login", req, &resp); err != nil {
		msg := normalize(err, "Login failed")
		log.Error("login failed", sl.Err(err))
		a.fail(msg)
		a.notify.Error(msg)
		return nil, err
	}

	a.sessions.Login(resp.Tokens.Access, resp.User)
	log.Info("login succeeded", slog.String("email", resp.User.Email), slog.String("role", resp.User.Role))
	return &resp, nil
}

// Logout сбрасывает сессию локально, без обращения к бэкенду.
func (a *Auth) Logout() {
	a.sessions.Logout()
}
