package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/advancify/lead-engine/internal/intake"
	"github.com/advancify/lead-engine/internal/model"
	"github.com/advancify/lead-engine/internal/pipeline"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lead intake webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env.Engine),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// leadProcessor is the part of the pipeline engine the HTTP layer needs.
type leadProcessor interface {
	Process(ctx context.Context, lead *model.LeadSubmission) (*pipeline.Result, error)
}

// newRouter builds the HTTP surface: the webhook endpoint (with its legacy
// alias) plus a health probe.
func newRouter(proc leadProcessor) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	validator := intake.NewValidator()
	handler := processLeadHandler(validator, proc)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/api/process-lead", handler)
	// Legacy alias kept for older form integrations.
	r.Post("/process", handler)

	return r
}

func processLeadHandler(v *intake.Validator, proc leadProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		lead, err := v.Parse(req.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		result, err := proc.Process(req.Context(), &lead)
		if err != nil {
			zap.L().Error("lead processing failed",
				zap.String("email", lead.Email),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Workflow Error",
				"details": err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"analysis": result.Analysis,
			"metrics":  result.Metrics,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && !errors.Is(err, http.ErrBodyNotAllowed) {
		zap.L().Warn("write response", zap.Error(err))
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
