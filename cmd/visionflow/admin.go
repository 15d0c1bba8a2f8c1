// Команды админской панели.
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/app"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

func cmdAdmin(ctx context.Context, a *app.App, args []string) error {
	sub := "orders"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}
	switch sub {
	case "orders":
		return cmdAdminOrders(ctx, a, args)
	case "review":
		return cmdAdminReview(ctx, a, args)
	case "stats":
		return cmdAdminStats(ctx, a)
	case "users":
		return cmdAdminUsers(ctx, a)
	case "set-role":
		return cmdAdminSetRole(ctx, a, args)
	default:
		return fmt.Errorf("unknown admin command: %s", sub)
	}
}

func cmdAdminOrders(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("admin orders", flag.ContinueOnError)
	status := fs.String("status", "", "filter: PENDING, APPROVED or REJECTED (default PENDING)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	orders, err := a.Admin.Orders(ctx, strings.ToUpper(*status))
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No orders")
		return nil
	}
	for _, o := range orders {
		reviewable := ""
		if o.CanReview() {
			reviewable = "  [reviewable]"
		}
		fmt.Printf("%4d  %-8s  %-10s ৳%-5d %s <%s> bkash=%s txn=%s%s\n",
			o.ID, o.Status, o.PlanName, o.AmountBDT, o.UserName, o.UserEmail,
			o.BkashNumber, o.TransactionID, reviewable)
		if o.UserNote != "" {
			fmt.Printf("      note: %s\n", o.UserNote)
		}
		if o.AdminNote != "" {
			fmt.Printf("      admin note: %s\n", o.AdminNote)
		}
	}
	return nil
}

// cmdAdminReview проверяет заявку и перезапрашивает список PENDING —
// локально статус не правится.
func cmdAdminReview(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("admin review", flag.ContinueOnError)
	id := fs.Int("id", 0, "order id")
	action := fs.String("action", "", "approve or reject")
	note := fs.String("note", "", "admin note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("missing required flag: -id")
	}

	if err := a.Admin.Review(ctx, *id, strings.ToLower(*action), *note); err != nil {
		return err
	}

	orders, err := a.Admin.Orders(ctx, models.OrderPending)
	if err != nil {
		return err
	}
	fmt.Printf("%d order(s) still pending\n", len(orders))
	return nil
}

func cmdAdminStats(ctx context.Context, a *app.App) error {
	stats, err := a.Admin.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Users:                %d\n", stats.TotalUsers)
	fmt.Printf("Detections:           %d\n", stats.TotalDetections)
	fmt.Printf("Revenue:              ৳%d\n", stats.TotalRevenueBDT)
	fmt.Printf("Pending orders:       %d\n", stats.PendingOrders)
	fmt.Printf("Active subscriptions: %d\n", stats.ActiveSubscriptions)
	return nil
}

func cmdAdminUsers(ctx context.Context, a *app.App) error {
	users, err := a.Admin.Users(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		plan := "-"
		if u.HasActiveSubscription {
			plan = fmt.Sprintf("%s %d/%d", u.SubscriptionPlan, u.DailyUsed, u.DailyLimit)
		}
		fmt.Printf("%4d  %-6s  %-30s %-20s detections=%-4d plan=%s\n",
			u.ID, u.Role, u.Email, strings.TrimSpace(u.FirstName+" "+u.LastName),
			u.TotalDetections, plan)
	}
	return nil
}

func cmdAdminSetRole(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("admin set-role", flag.ContinueOnError)
	id := fs.Int("id", 0, "user id")
	role := fs.String("role", "", "USER or ADMIN")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("missing required flag: -id")
	}
	return a.Admin.UpdateRole(ctx, *id, strings.ToUpper(*role))
}
