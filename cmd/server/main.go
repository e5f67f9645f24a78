package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"

	"github.com/inamate/snapkit/internal/auth"
	"github.com/inamate/snapkit/internal/collab"
	"github.com/inamate/snapkit/internal/config"
	"github.com/inamate/snapkit/internal/logging"
	mw "github.com/inamate/snapkit/internal/middleware"
	"github.com/inamate/snapkit/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Install(os.Stderr, "info")
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logging.Install(os.Stderr, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	guides, err := store.Open(ctx, cfg)
	if err != nil {
		slog.Error("open ruler store", "error", err, "backend", cfg.RulerStore)
		os.Exit(1)
	}
	defer guides.Close()

	authService := auth.NewService(cfg.JWTSecret, cfg.AuthDisabled)
	authHandler := auth.NewHandler(authService)

	hub := collab.NewHub(guides, collab.Options{
		FrameInterval:  cfg.FrameInterval,
		MaxScrollSpeed: cfg.AutoScrollMaxSpeed,
	})
	go hub.Run()

	guideHandler := collab.NewGuideHandler(hub)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.Middleware)

	api.HandleFunc("/me", authHandler.Me).Methods("GET", "OPTIONS")
	api.HandleFunc("/workspaces/{workspaceId}/guides", guideHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/workspaces/{workspaceId}/guides", guideHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/workspaces/{workspaceId}/guides/{guideId}", guideHandler.Delete).Methods("DELETE", "OPTIONS")

	// WebSocket endpoint
	r.HandleFunc("/ws/workspace/{workspaceId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, cfg.Origins())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Sessions hold hijacked connections that Shutdown does not wait for.
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "store", cfg.RulerStore, "auth", !cfg.AuthDisabled)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, authSvc *auth.Service, origins []string) {
	workspaceID := mux.Vars(r)["workspaceId"]

	// Browsers cannot set headers on a websocket handshake, so the token
	// comes as a query parameter.
	subject, err := authSvc.ValidateToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := collab.NewClient(hub, conn, workspaceID, subject)
	client.Serve(r.Context())
}
