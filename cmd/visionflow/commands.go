// Команды пользовательских разделов.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/app"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/export"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// promptPassword читает пароль без эха; вне терминала — обычной строкой.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// sessionEmail возвращает email текущего пользователя.
func sessionEmail(a *app.App) string {
	snap := a.Sessions.Current()
	if snap.User == nil {
		return ""
	}
	return snap.User.Email
}

func cmdRegister(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password (prompted if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.Navigator.Navigate(app.RegisterRoute)
	pass := *password
	if pass == "" {
		var err error
		if pass, err = promptPassword("Password: "); err != nil {
			return err
		}
	}
	if _, err := a.Auth.Register(ctx, *first, *last, *email, pass); err != nil {
		return err
	}
	return nil
}

func cmdLogin(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password (prompted if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.Navigator.Navigate(app.LoginRoute)
	pass := *password
	if pass == "" {
		var err error
		if pass, err = promptPassword("Password: "); err != nil {
			return err
		}
	}

	resp, err := a.Auth.Login(ctx, *email, pass)
	if err != nil {
		return err
	}

	// Администратор попадает в админскую панель, остальные — в дашборд.
	landing := app.DashboardRoute
	if resp.User.IsAdmin() {
		landing = app.AdminDashboardRoute
	}
	a.Navigator.Navigate(landing)
	fmt.Printf("Logged in as %s (%s) → %s\n", resp.User.FullName(), resp.User.Role, landing)
	return nil
}

func cmdLogout(a *app.App) error {
	a.Auth.Logout()
	a.Navigator.Navigate(app.LoginRoute)
	fmt.Println("Logged out")
	return nil
}

func cmdWhoami(a *app.App) error {
	snap := a.Sessions.Current()
	if !snap.IsAuthenticated {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s\n", snap.User.FullName(), snap.User.Email, snap.User.Role)
	return nil
}

func cmdAnalyze(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	file := fs.String("file", "", "path to the image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("missing required flag: -file")
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := a.Detection.Analyze(ctx, filepath.Base(*file), f, sessionEmail(a))
	if err != nil {
		return err
	}
	fmt.Printf("Detected: %s\nAdvice:   %s\nHeatmap:  %s\n", result.Detected, result.Advice, result.HeatmapURL)
	return nil
}

func cmdHistory(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	search := fs.String("search", "", "filter by object name")
	from := fs.String("from", "", "date from (YYYY-MM-DD)")
	to := fs.String("to", "", "date to (YYYY-MM-DD)")
	del := fs.Int("delete", 0, "delete one record by id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *del > 0 {
		return a.History.Delete(ctx, *del)
	}

	items, err := a.History.List(ctx, sessionEmail(a), *search, *from, *to)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No detections found")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%4d  %-12s  %-20s  %s\n", item.ID, item.ObjectName, item.CreatedAt, item.Advice)
	}
	return nil
}

func cmdExport(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("format", "json", "export format: json or csv")
	idsFlag := fs.String("ids", "", "comma-separated record ids (default: all)")
	out := fs.String("out", "", "output file (default: traffic-ai-export-<ts>.<ext>)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *format != "json" && *format != "csv" {
		return fmt.Errorf("format must be json or csv")
	}

	items, err := a.History.List(ctx, sessionEmail(a), "", "", "")
	if err != nil {
		return err
	}

	selected := items
	if *idsFlag != "" {
		var ids []int
		for _, part := range strings.Split(*idsFlag, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return fmt.Errorf("invalid id %q", part)
			}
			ids = append(ids, id)
		}
		selected = export.Select(items, ids)
	}
	if len(selected) == 0 {
		return fmt.Errorf("nothing selected to export")
	}

	name := *out
	if name == "" {
		name = export.FileName(*format, time.Now())
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if *format == "csv" {
		err = export.WriteCSV(f, selected)
	} else {
		err = export.WriteJSON(f, selected)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d detection(s) to %s\n", len(selected), name)
	return nil
}

func cmdStats(ctx context.Context, a *app.App) error {
	summary, err := a.Stats.Get(ctx, sessionEmail(a))
	if err != nil {
		return err
	}
	fmt.Printf("Total detections: %d\n", summary.TotalDetections)
	if len(summary.MostCommonObjects) > 0 {
		fmt.Println("Most common objects:")
		for name, count := range summary.MostCommonObjects {
			fmt.Printf("  %-12s %d\n", name, count)
		}
	}
	return nil
}

func cmdProfile(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	first := fs.String("first", "", "new first name")
	last := fs.String("last", "", "new last name")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email := sessionEmail(a)
	if *first != "" || *last != "" || *password != "" {
		if err := a.Profile.Update(ctx, email, *first, *last, *password); err != nil {
			return err
		}
	}

	profile, err := a.Profile.Get(ctx, email)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\nMember since: %s\nTotal detections: %d\n",
		profile.FullName(), profile.Email, profile.CreatedAt, profile.TotalDetections)
	return nil
}

func cmdSubscription(ctx context.Context, a *app.App, args []string) error {
	sub := "status"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "status":
		status, err := a.Subscription.Status(ctx)
		if err != nil {
			return err
		}
		if !status.HasActiveSubscription {
			fmt.Println("No active subscription")
			return nil
		}
		fmt.Printf("Plan: %s (%d/%d used today), active until %s\n",
			status.PlanName, status.DailyUsed, status.DailyLimit, status.EndAt)
		return nil
	case "plans":
		plans, err := a.Subscription.Plans(ctx)
		if err != nil {
			return err
		}
		for _, p := range plans {
			fmt.Printf("%-10s ৳%-5d %s\n", p.Label, p.PriceBDT, p.Description)
		}
		return nil
	case "api-key":
		key, err := a.Subscription.APIKey(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s (expires %s)\n", key.Key, key.ExpiresAt)
		return nil
	default:
		return fmt.Errorf("unknown subscription command: %s", sub)
	}
}

func cmdOrders(ctx context.Context, a *app.App, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}
	switch sub {
	case "submit":
		fs := flag.NewFlagSet("orders submit", flag.ContinueOnError)
		plan := fs.String("plan", "", "plan name")
		amount := fs.Int("amount", 0, "amount in BDT")
		bkash := fs.String("bkash", "", "bKash number used for payment")
		txn := fs.String("txn", "", "bKash transaction id")
		note := fs.String("note", "", "note for the reviewer")
		if err := fs.Parse(args); err != nil {
			return err
		}
		_, err := a.Subscription.SubmitOrder(ctx, models.OrderCreateRequest{
			PlanName:      *plan,
			AmountBDT:     *amount,
			BkashNumber:   *bkash,
			TransactionID: *txn,
			UserNote:      *note,
		})
		return err
	case "list":
		orders, err := a.Subscription.MyOrders(ctx)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("No orders")
			return nil
		}
		for _, o := range orders {
			fmt.Printf("%4d  %-8s  %-10s ৳%-5d txn=%s\n", o.ID, o.Status, o.PlanName, o.AmountBDT, o.TransactionID)
		}
		return nil
	default:
		return fmt.Errorf("unknown orders command: %s", sub)
	}
}
