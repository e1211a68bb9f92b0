package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/jrsteele09/go-session-server/auth"
	"github.com/jrsteele09/go-session-server/internal/config"
	"github.com/jrsteele09/go-session-server/server"
	"github.com/jrsteele09/go-session-server/sessions/mongostore"
	"github.com/jrsteele09/go-session-server/users/mongorepo"
)

const startupTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	store, err := newSessionStore(c)
	if err != nil {
		return fmt.Errorf("session store configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Block startup on the store's connection and index guarantees; a
	// failed initialization is not retried here, the process exits.
	if err := store.Ready(ctx); err != nil {
		return fmt.Errorf("session store initialization: %w", err)
	}

	coll, err := store.Collection(ctx)
	if err != nil {
		return fmt.Errorf("session store collection: %w", err)
	}

	userRepo, err := mongorepo.New(ctx, coll.Database())
	if err != nil {
		return fmt.Errorf("user repository: %w", err)
	}

	strategy, err := auth.NewStrategy(userRepo)
	if err != nil {
		return fmt.Errorf("authentication strategy: %w", err)
	}

	srv, err := server.New(c, store, strategy, userRepo)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer, store)
}

// newSessionStore hands the store either the full connection string or the
// discrete connection parts; the two are mutually exclusive at the store
// level, so only one set is passed through.
func newSessionStore(c config.Config) (*mongostore.Store, error) {
	cfg := mongostore.Config{Collection: c.GetMongoCollection()}
	if url := c.GetMongoURL(); url != "" {
		cfg.URL = url
	} else {
		cfg.Host = c.GetMongoHost()
		cfg.Port = c.GetMongoPort()
		cfg.DB = c.GetMongoDatabase()
		cfg.User = c.GetMongoUser()
		cfg.Password = c.GetMongoPassword()
		cfg.SSL = c.GetMongoSSL()
	}
	return mongostore.New(cfg)
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server, store *mongostore.Store) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	if err := store.Close(ctx); err != nil {
		return fmt.Errorf("store.Close: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
