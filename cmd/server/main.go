package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-boardgame-service/auth"
	"github.com/jrsteele09/go-boardgame-service/collection"
	"github.com/jrsteele09/go-boardgame-service/internal/config"
	"github.com/jrsteele09/go-boardgame-service/reviews"
	"github.com/jrsteele09/go-boardgame-service/server"
	"github.com/jrsteele09/go-boardgame-service/storage/postgres"
	"github.com/jrsteele09/go-boardgame-service/token"
	"github.com/jrsteele09/go-boardgame-service/users"
)

func main() {
	log := newLogger()
	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run(log zerolog.Logger) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	if err := config.Validate(c); err != nil {
		return errors.Wrap(err, "config validation")
	}
	displayAppname(c.GetAppName())

	store, err := postgres.Open(c.GetDatabaseDSN())
	if err != nil {
		return errors.Wrap(err, "open store")
	}
	defer store.Close()

	srv, err := buildServer(c, store, log)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer, log)
	waitForStopSignal()
	return shutdown(httpServer)
}

func buildServer(c config.Config, store *postgres.Store, log zerolog.Logger) (*server.Server, error) {
	codec, err := token.NewCodec(c.GetJWTSecret(), c.GetAccessTokenExpiry(), c.GetRefreshTokenExpiry())
	if err != nil {
		return nil, errors.Wrap(err, "token codec")
	}

	resolver, err := auth.NewResolver(codec)
	if err != nil {
		return nil, errors.Wrap(err, "identity resolver")
	}

	authService, err := auth.NewAuthenticationService(store.Users(), codec)
	if err != nil {
		return nil, errors.Wrap(err, "auth service")
	}

	userService, err := users.NewService(store.Users(), store.Reviews(), store.Entries(), store.Labels())
	if err != nil {
		return nil, errors.Wrap(err, "user service")
	}

	reviewService, err := reviews.NewService(store.Reviews(), store.Users())
	if err != nil {
		return nil, errors.Wrap(err, "review service")
	}

	reconciler, err := collection.NewReconciler(store.Labels())
	if err != nil {
		return nil, errors.Wrap(err, "label reconciler")
	}

	collectionService, err := collection.NewService(store.Entries(), reconciler, store.Reviews())
	if err != nil {
		return nil, errors.Wrap(err, "collection service")
	}

	return server.New(c, server.Services{
		Auth:       authService,
		Users:      userService,
		Reviews:    reviewService,
		Collection: collectionService,
	}, resolver, log)
}

func newLogger() zerolog.Logger {
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func listenAndServe(httpServer *http.Server, log zerolog.Logger) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
