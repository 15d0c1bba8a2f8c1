// Команда visionflow — консольный клиент сервиса VisionFlow Traffic AI.
//
// Повторяет разделы веб-приложения: вход и регистрация, анализ изображений,
// история и выгрузка, статистика, профиль, подписка и заявки на оплату,
// а для администратора — проверка заявок и управление пользователями.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/app"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/config"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/guard"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	a, err := app.New(cfg, log, consoleNotifier{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Dispose()

	if err := dispatch(context.Background(), a, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(env string) *slog.Logger {
	level := slog.LevelDebug
	if env == envProd {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// consoleNotifier — консольный аналог транзиентных уведомлений.
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { fmt.Fprintln(os.Stdout, "✔ "+msg) }
func (consoleNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, "✘ "+msg) }

func dispatch(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return cmdRegister(ctx, a, rest)
	case "login":
		return cmdLogin(ctx, a, rest)
	case "logout":
		return cmdLogout(a)
	case "whoami":
		return cmdWhoami(a)
	case "analyze":
		return protected(a, guard.AreaUser, app.DashboardRoute+"/analyze", func() error {
			return cmdAnalyze(ctx, a, rest)
		})
	case "history":
		return protected(a, guard.AreaUser, app.DashboardRoute+"/history", func() error {
			return cmdHistory(ctx, a, rest)
		})
	case "export":
		return protected(a, guard.AreaUser, app.DashboardRoute+"/export", func() error {
			return cmdExport(ctx, a, rest)
		})
	case "stats":
		return protected(a, guard.AreaUser, app.DashboardRoute+"/analytics", func() error {
			return cmdStats(ctx, a)
		})
	case "profile":
		return protected(a, guard.AreaUser, app.DashboardRoute+"/profile", func() error {
			return cmdProfile(ctx, a, rest)
		})
	case "subscription":
		return protected(a, guard.AreaUser, app.DashboardRoute+"/profile", func() error {
			return cmdSubscription(ctx, a, rest)
		})
	case "orders":
		return protected(a, guard.AreaUser, app.DashboardRoute+"/profile", func() error {
			return cmdOrders(ctx, a, rest)
		})
	case "admin":
		return protected(a, guard.AreaAdmin, app.AdminDashboardRoute, func() error {
			return cmdAdmin(ctx, a, rest)
		})
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// protected — охрана маршрута перед выполнением команды: содержимое
// защищённого раздела не выполняется, пока охрана не разрешит доступ.
func protected(a *app.App, area guard.Area, route string, run func() error) error {
	decision := guard.Evaluate(a.GuardView(), area)
	switch decision.State {
	case guard.StateRedirecting:
		a.Navigator.Navigate(decision.Target)
		if decision.Target == guard.LoginRoute {
			return fmt.Errorf("not logged in, please run: visionflow login")
		}
		return fmt.Errorf("admin access required")
	case guard.StateAuthorized:
		a.Navigator.Navigate(route)
		return run()
	default:
		return fmt.Errorf("session is still loading")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: visionflow <command> [flags]

Commands:
  register      create an account
  login         sign in and store the session
  logout        drop the local session
  whoami        show the current session
  analyze       submit an image for detection
  history       list or delete detection records
  export        export selected records to JSON or CSV
  stats         show detection statistics
  profile       show or update the profile
  subscription  show subscription status, plans and API key
  orders        submit or list payment orders
  admin         admin panel: orders, users, stats`)
}
