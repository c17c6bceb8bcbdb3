package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/teachreach/marketplace/internal/client/mirror"
	"github.com/teachreach/marketplace/internal/client/model"
	"github.com/teachreach/marketplace/internal/client/orchestrator"
	"github.com/teachreach/marketplace/internal/client/router"
	"github.com/teachreach/marketplace/internal/client/session"
)

type app struct {
	orch    *orchestrator.Orchestrator
	session *session.Store
	state   *mirror.State
	nav     *router.Navigator
	out     io.Writer
}

type command struct {
	args int
	run  func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"register": {3, func(ctx context.Context, a *app, args []string) error {
		id, err := a.orch.Register(ctx, orchestrator.RegisterInput{Name: args[0], Email: args[1], Password: args[2]})
		return a.print(id, err)
	}},
	"login": {2, func(ctx context.Context, a *app, args []string) error {
		id, err := a.orch.Login(ctx, args[0], args[1])
		return a.print(id, err)
	}},
	"logout": {0, func(ctx context.Context, a *app, _ []string) error {
		return a.orch.Logout(ctx)
	}},
	"whoami": {0, func(_ context.Context, a *app, _ []string) error {
		id := a.session.Current()
		if id == nil {
			return fmt.Errorf("%w: not signed in", model.ErrAuth)
		}
		id.Credential = ""
		return a.print(id, nil)
	}},
	"verify": {2, func(ctx context.Context, a *app, args []string) error {
		id, err := a.orch.Verify(ctx, args[0], args[1])
		return a.print(id, err)
	}},
	"resend": {1, func(ctx context.Context, a *app, args []string) error {
		return a.orch.ResendCode(ctx, args[0])
	}},
	"profile": {0, runProfile},
	"delete-account": {0, func(ctx context.Context, a *app, _ []string) error {
		return a.orch.DeleteAccount(ctx)
	}},
	"services": {0, func(_ context.Context, a *app, _ []string) error {
		return a.print(a.state.Services(), nil)
	}},
	"order": {1, func(ctx context.Context, a *app, args []string) error {
		o, err := a.orch.PlaceOrder(ctx, args[0])
		return a.print(o, err)
	}},
	"orders": {0, func(ctx context.Context, a *app, _ []string) error {
		if err := a.orch.RefreshOrders(ctx); err != nil {
			return err
		}
		return a.print(a.state.Orders(), nil)
	}},
	"status": {2, func(ctx context.Context, a *app, args []string) error {
		o, err := a.orch.UpdateOrderStatus(ctx, args[0], model.OrderStatus(strings.ToLower(args[1])), strings.Join(args[2:], " "))
		return a.print(o, err)
	}},
	"reviews": {0, func(ctx context.Context, a *app, _ []string) error {
		if err := a.orch.RefreshReviews(ctx); err != nil {
			return err
		}
		return a.print(a.state.Reviews(), nil)
	}},
	"review": {2, func(ctx context.Context, a *app, args []string) error {
		rating, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: rating must be a number", model.ErrValidation)
		}
		rv, err := a.orch.AddReview(ctx, rating, strings.Join(args[1:], " "))
		return a.print(rv, err)
	}},
	"delete-review": {1, func(ctx context.Context, a *app, args []string) error {
		return a.orch.DeleteReview(ctx, args[0])
	}},
	"send": {1, func(ctx context.Context, a *app, args []string) error {
		m, err := a.orch.SendMessage(ctx, strings.Join(args, " "), "")
		return a.print(m, err)
	}},
	"admin-send": {2, func(ctx context.Context, a *app, args []string) error {
		m, err := a.orch.AdminSendMessage(ctx, args[0], strings.Join(args[1:], " "), "")
		return a.print(m, err)
	}},
	"inbox": {0, func(_ context.Context, a *app, _ []string) error {
		return a.print(a.state.Messages(), nil)
	}},
	"read": {1, func(ctx context.Context, a *app, args []string) error {
		n, err := a.orch.MarkAsRead(ctx, args[0])
		return a.print(map[string]int{"marked": n}, err)
	}},
	"notifications": {0, func(_ context.Context, a *app, _ []string) error {
		return a.print(map[string]int{
			"total":  a.orch.NotificationCount(),
			"unread": a.orch.UnreadCount(),
		}, nil)
	}},
	"users": {0, func(ctx context.Context, a *app, _ []string) error {
		if err := a.orch.RefreshUsers(ctx); err != nil {
			return err
		}
		return a.print(a.state.Users(), nil)
	}},
	"delete-user": {1, func(ctx context.Context, a *app, args []string) error {
		return a.orch.DeleteUser(ctx, args[0])
	}},
	"add-service": {3, func(ctx context.Context, a *app, args []string) error {
		price, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("%w: price must be a number", model.ErrValidation)
		}
		days, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: days must be a number", model.ErrValidation)
		}
		svc := model.Service{Title: args[0], Price: price, DeliveryDays: days}
		if len(args) > 3 {
			svc.Category = args[3]
		}
		svc, err = a.orch.AddService(ctx, svc)
		return a.print(svc, err)
	}},
	"delete-service": {1, func(ctx context.Context, a *app, args []string) error {
		return a.orch.DeleteService(ctx, args[0])
	}},
	"site-name": {1, func(ctx context.Context, a *app, args []string) error {
		return a.orch.SetSiteName(ctx, strings.Join(args, " "))
	}},
}

func (a *app) dispatch(ctx context.Context, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	if len(args) < cmd.args {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, cmd.args, len(args))
	}
	a.orch.Start(ctx)
	if err := cmd.run(ctx, a, args); err != nil {
		return err
	}
	if v, _ := a.nav.Current(); v != router.Home {
		fmt.Fprintf(a.out, "view: %s\n", v)
	}
	return nil
}

func runProfile(ctx context.Context, a *app, args []string) error {
	var in orchestrator.ProfileInput
	fs := pflag.NewFlagSet("profile", pflag.ContinueOnError)
	fs.StringVar(&in.Name, "name", "", "new display name")
	fs.StringVar(&in.Email, "email", "", "new email (requires verification)")
	fs.StringVar(&in.Phone, "phone", "", "new phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	res, err := a.orch.UpdateProfile(ctx, in)
	if err != nil {
		return err
	}
	if res.VerificationRequired {
		fmt.Fprintf(a.out, "verification code sent to %s; run: marketctl verify %s <code>\n", res.Identity.Email, res.Identity.Email)
		return nil
	}
	res.Identity.Credential = ""
	return a.print(res.Identity, nil)
}

// print writes v as indented JSON. Credentials are never printed.
func (a *app) print(v any, err error) error {
	if err != nil {
		return err
	}
	if id, ok := v.(model.Identity); ok {
		id.Credential = ""
		v = id
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
