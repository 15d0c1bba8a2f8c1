// Package services: профиль пользователя.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/api"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/sl"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// Profile — сервис профиля.
type Profile struct {
	state
	log    *slog.Logger
	client *api.Client
	notify Notifier
}

// NewProfile создаёт сервис профиля.
func NewProfile(log *slog.Logger, client *api.Client, notify Notifier) *Profile {
	return &Profile{log: log, client: client, notify: notify}
}

// Get возвращает профиль по email.
func (p *Profile) Get(ctx context.Context, email string) (*models.Profile, error) {
	const op = "services.Profile.Get"

	p.begin()
	defer p.done()
	log := p.log.With(sl.Op(op))

	if email == "" {
		p.fail(ErrMissingEmail.Error())
		return nil, fmt.Errorf("%s: %w", op, ErrMissingEmail)
	}

	var profile models.Profile
	if err := p.client.Get(ctx, "/profile", url.Values{"email": {email}}, &profile); err != nil {
		msg := normalize(err, "Failed to fetch profile")
		log.Error("profile fetch failed", sl.Err(err))
		p.fail(msg)
		p.notify.Error(msg)
		return nil, err
	}
	return &profile, nil
}

// Update изменяет имя и/или пароль. Отправляются только заданные поля.
func (p *Profile) Update(ctx context.Context, email, firstName, lastName, password string) error {
	const op = "services.Profile.Update"

	p.begin()
	defer p.done()
	log := p.log.With(sl.Op(op))

	if email == "" {
		p.fail(ErrMissingEmail.Error())
		return fmt.Errorf("%s: %w", op, ErrMissingEmail)
	}

	body := map[string]string{"email": email}
	if firstName != "" {
		body["first_name"] = firstName
	}
	if lastName != "" {
		body["last_name"] = lastName
	}
	if password != "" {
		body["password"] = password
	}

	var resp models.MessageResponse
	if err := p.client.Put(ctx, "/profile/update", body, &resp); err != nil {
		msg := normalize(err, "Failed to update profile")
		log.Error("profile update failed", sl.Err(err))
		p.fail(msg)
		p.notify.Error(msg)
		return err
	}

	p.notify.Success(resp.Message)
	return nil
}
