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
	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/outreach-cli/internal/resilience"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP trigger surface and the scheduled batch runner",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env),
		}

		g, ctx := errgroup.WithContext(ctx)

		var scheduler *cron.Cron
		if cfg.Schedule.Enabled {
			scheduler = cron.New()
			if _, err := scheduler.AddFunc(cfg.Schedule.Cron, func() {
				zap.L().Info("scheduled batch starting",
					zap.String("schedule", cfg.Schedule.Cron))
				report, err := env.Orchestrator.Run(ctx, cfg.HubSpot.SegmentID)
				if err != nil {
					zap.L().Error("scheduled batch failed", zap.Error(err))
					return
				}
				zap.L().Info("scheduled batch complete",
					zap.String("run_id", report.RunID),
					zap.Int("total", report.TotalProcessed),
					zap.Int("failed", report.Failed))
			}); err != nil {
				return eris.Wrap(err, "invalid cron schedule "+cfg.Schedule.Cron)
			}
		}

		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})

		if scheduler != nil {
			scheduler.Start()
			zap.L().Info("scheduler started", zap.String("schedule", cfg.Schedule.Cron))

			g.Go(func() error {
				<-ctx.Done()
				<-scheduler.Stop().Done()
				return nil
			})
		}

		g.Go(func() error {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func newRouter(env *pipelineEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/contacts", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			contacts, err := env.Resolver.Resolve(req.Context(), cfg.HubSpot.SegmentID)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"count":    len(contacts),
				"contacts": contacts,
			})
		})

		r.Get("/{contactID}", func(w http.ResponseWriter, req *http.Request) {
			result, err := env.Orchestrator.Analyze(req.Context(), chi.URLParam(req, "contactID"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, result)
		})

		r.Post("/{contactID}/analyze", func(w http.ResponseWriter, req *http.Request) {
			result, published, err := env.Orchestrator.RunOne(req.Context(), chi.URLParam(req, "contactID"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"analysis":  result,
				"published": published,
			})
		})

		r.Post("/analyze-all", func(w http.ResponseWriter, req *http.Request) {
			// The batch outlives the request; it is detached from the
			// request context on purpose.
			go func() {
				report, err := env.Orchestrator.Run(context.Background(), cfg.HubSpot.SegmentID)
				if err != nil {
					zap.L().Error("triggered batch failed", zap.Error(err))
					return
				}
				zap.L().Info("triggered batch complete",
					zap.String("run_id", report.RunID),
					zap.Int("total", report.TotalProcessed),
					zap.Int("failed", report.Failed))
			}()
			writeJSON(w, http.StatusAccepted, map[string]string{
				"status":  "accepted",
				"segment": cfg.HubSpot.SegmentID,
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	zap.L().Error("request failed", zap.Error(err))
	writeJSON(w, statusForError(err), map[string]string{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, resilience.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, resilience.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, resilience.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, resilience.ErrRateLimited):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
