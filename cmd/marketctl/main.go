// marketctl drives the marketplace client core from the command line: it
// keeps a session and a local mirror between runs and talks to the API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/teachreach/marketplace/internal/client/gateway"
	"github.com/teachreach/marketplace/internal/client/mirror"
	"github.com/teachreach/marketplace/internal/client/orchestrator"
	"github.com/teachreach/marketplace/internal/client/router"
	"github.com/teachreach/marketplace/internal/client/session"
	"github.com/teachreach/marketplace/internal/client/storage"
	redisstore "github.com/teachreach/marketplace/internal/infrastructure/db/redis"
	"github.com/teachreach/marketplace/internal/infrastructure/queue"
	"github.com/teachreach/marketplace/internal/pkg/config"
	"github.com/teachreach/marketplace/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var configPath string

	flagSet := pflag.NewFlagSet("marketctl", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "marketctl.jsonc", "client config file (JSONC)")
	flagSet.SetInterspersed(false)
	flagSet.Usage = func() { printHelp(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() == 0 {
		printHelp(flagSet)
		return errors.New("missing command")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadClient(ctx, configPath)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr, Service: "marketctl"})

	kv, closeKV, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	sess := session.Open(ctx, kv, logger.Component("session"))
	state := mirror.Open(ctx, kv, logger.Component("mirror"))
	defer func() {
		if err := state.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to flush mirror")
		}
	}()

	writes := queue.NewSerializer(1, logger.Component("writes"))
	writes.Start(ctx)

	gatewayOpts := []gateway.Option{gateway.WithLogger(logger.Component("gateway"))}
	if cfg.HTTPTimeout > 0 {
		gatewayOpts = append(gatewayOpts, gateway.WithTimeout(time.Duration(cfg.HTTPTimeout)))
	}

	nav := router.NewNavigator(sess, logger.Component("router"))
	orch := orchestrator.New(orchestrator.Deps{
		Remote:    gateway.New(cfg.APIURL, sess, gatewayOpts...),
		Session:   sess,
		State:     state,
		Navigator: nav,
		Notifier:  orchestrator.LogNotifier{Log: logger.Component("notifier")},
		Writes:    writes,
		Logger:    logger.Component("orchestrator"),
	})

	app := &app{orch: orch, session: sess, state: state, nav: nav, out: stdout}
	return app.dispatch(ctx, flagSet.Arg(0), flagSet.Args()[1:])
}

func openStorage(ctx context.Context, cfg *config.ClientConfig) (storage.KV, func(), error) {
	switch cfg.StateBackend {
	case config.BackendMemory:
		return storage.NewMemory(), func() {}, nil
	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, ClientName: "marketctl"})
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedis(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	default:
		db, err := storage.OpenSQLite(cfg.StatePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: marketctl [flags] <command> [args]

Account:
  register <name> <email> <password>   create an account and sign in
  login <email> <password>             sign in
  logout                               sign out
  whoami                               show the current identity
  verify <email> <code>                confirm a changed email address
  resend <email>                       issue a new verification code
  profile [--name N] [--email E] [--phone P]
  delete-account                       delete the current account

Catalog and orders:
  services                             list the catalog
  order <service-id>                   check out one service
  orders                               refresh and list orders
  status <order-id> <status> [deliverables]   (admin)

Reviews:
  reviews                              refresh and list reviews
  review <rating> <comment>            post a review
  delete-review <id>                   (admin)

Messages:
  send <text>                          message support
  admin-send <user-id> <text>          (admin)
  inbox                                list messages
  read <sender-id>                     mark a thread read
  notifications                        active orders plus unread messages

Administration:
  users                                refresh and list users
  delete-user <id>
  add-service <title> <price> <days> [category]
  delete-service <id>
  site-name <name>

Flags:
%s`, flagSet.FlagUsages())
}
