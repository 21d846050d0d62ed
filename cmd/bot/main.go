package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ricacasa/concierge/internal/catalog"
	"github.com/ricacasa/concierge/internal/config"
	"github.com/ricacasa/concierge/internal/handler"
	"github.com/ricacasa/concierge/internal/model/menu"
	machine "github.com/ricacasa/concierge/internal/service/conversation"
	"github.com/ricacasa/concierge/internal/service/queue"
	"github.com/ricacasa/concierge/internal/service/session"
	"github.com/ricacasa/concierge/internal/status"
	"github.com/ricacasa/concierge/internal/transport"
	"github.com/ricacasa/concierge/internal/ws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	menuDef := menu.New(menu.Seed())
	messages := catalog.New(menuDef)
	store := session.NewStore(cfg.Conversation.SessionTimeout)
	handoff := queue.New()

	hub := ws.NewHub(nil, cfg.Dashboard.Token)
	tracker := status.NewTracker(hub)

	client := transport.NewLogClient(tracker, cfg.Transport.SessionDir, cfg.Transport.SessionName)
	hub.SetController(client)

	bot := machine.NewMachine(machine.Config{
		WelcomeDelay:        cfg.Conversation.WelcomeDelay,
		StepDelay:           cfg.Conversation.StepDelay,
		AfterCapture:        machine.AfterCapture(cfg.Conversation.AfterCapture),
		PropagateSendErrors: cfg.Conversation.PropagateSendErrors,
	}, store, menuDef, messages, client, handoff)

	bridge := transport.NewBridge(tracker, bot)

	// Console adapter: type guest messages on stdin to exercise the
	// responder locally; a real chat-network adapter replaces this.
	go client.Run(ctx, bridge, os.Stdin)

	router := handler.NewRouter(tracker, client, handoff, store, hub, cfg.Dashboard.Token)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Concierge responder listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
