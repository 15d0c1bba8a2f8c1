// Package app собирает клиентское приложение VisionFlow: конфиг, сессию,
// HTTP-клиент с перехватом 401 и сервисы ресурсов.
//
// Жизненный цикл: New (гидратация сессии из хранилища) → работа → Dispose.
// Dispose явный, поскольку headless-окружению никто не «закроет вкладку».
package app

import (
	"fmt"
	"log/slog"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/api"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/config"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/guard"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/services"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/session"
)

// App — собранное клиентское приложение.
type App struct {
	Log       *slog.Logger
	Sessions  *session.Store
	Client    *api.Client
	Navigator *Navigator

	Auth         *services.Auth
	Detection    *services.Detection
	History      *services.History
	Profile      *services.Profile
	Stats        *services.Stats
	Subscription *services.Subscription
	Admin        *services.Admin
}

// New собирает приложение и восстанавливает сессию из хранилища.
//
// Перехватчик 401 устанавливается здесь: сессия сбрасывается, пользователь
// получает одно уведомление и переводится на /login — если только он уже
// не находится на странице аутентификации.
func New(cfg *config.Config, log *slog.Logger, notify services.Notifier) (*App, error) {
	const op = "app.New"

	storage, err := session.NewFileStorage(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sessions := session.NewStore(log, storage)
	sessions.Init()

	nav := NewNavigator(LoginRoute)
	client := api.New(log, cfg.APIBaseURL, cfg.Timeout, sessions)
	client.SetUnauthorizedHandler(func() {
		if nav.OnAuthPage() {
			return
		}
		sessions.Logout()
		notify.Error("Session expired. Please login again.")
		nav.Navigate(LoginRoute)
	})

	return &App{
		Log:       log,
		Sessions:  sessions,
		Client:    client,
		Navigator: nav,

		Auth:         services.NewAuth(log, client, sessions, notify),
		Detection:    services.NewDetection(log, client, notify),
		History:      services.NewHistory(log, client, notify),
		Profile:      services.NewProfile(log, client, notify),
		Stats:        services.NewStats(log, client, notify),
		Subscription: services.NewSubscription(log, client, notify),
		Admin:        services.NewAdmin(log, client, notify),
	}, nil
}

// GuardView возвращает состояние сессии в терминах охраны маршрутов.
func (a *App) GuardView() guard.View {
	snap := a.Sessions.Current()
	view := guard.View{
		Loading:       !a.Sessions.Initialized(),
		Authenticated: snap.IsAuthenticated,
	}
	if snap.User != nil {
		view.Role = snap.User.Role
	}
	return view
}

// Dispose завершает работу приложения.
func (a *App) Dispose() {
	a.Sessions.Dispose()
}
