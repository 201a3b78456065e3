package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"connectrpc.com/connect"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/castlemilk/finhealth/internal/auth"
	"github.com/castlemilk/finhealth/internal/config"
	"github.com/castlemilk/finhealth/internal/scheduler"
	"github.com/castlemilk/finhealth/internal/service"
	"github.com/castlemilk/finhealth/internal/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := cfg.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	storeImpl, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var verifier auth.TokenVerifier
	switch {
	case cfg.IsLocal():
		// Local development with the memory store always uses mock authentication
		log.Info("Using mock authentication for local development")
	case cfg.SkipAuth:
		log.Warn("SKIP_AUTH enabled - using mock authentication (for seeding/testing only)")
	default:
		firebaseAuth, err := auth.NewFirebaseAuth(ctx, cfg.ProjectID)
		if err != nil {
			return fmt.Errorf("failed to initialize Firebase Auth: %w", err)
		}
		verifier = firebaseAuth
	}

	insightsService, err := service.NewInsightsService(storeImpl, service.Options{
		DefaultCurrency: cfg.DefaultCurrency,
		CacheMaxEntries: cfg.CacheMaxCost,
		Logger:          log,
	})
	if err != nil {
		return err
	}
	defer insightsService.Close()

	// Debug interceptor first so impersonation wins over the mock user
	interceptors := []connect.Interceptor{auth.DebugAuthInterceptor(cfg.SkipAuth || cfg.IsLocal())}
	if verifier != nil {
		interceptors = append(interceptors, auth.AuthInterceptor(verifier, log))
	} else {
		interceptors = append(interceptors, auth.LocalDevInterceptor())
	}

	path, handler := service.NewInsightsServiceHandler(
		insightsService,
		connect.WithInterceptors(interceptors...),
	)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
			"Content-Type",
			"User-Agent",
			"X-User-Agent",
			auth.ImpersonateHeader,
		},
		AllowCredentials: true,
	})

	if cfg.SnapshotSchedule != "" {
		sched, err := scheduler.New(insightsService, cfg.SnapshotSchedule, log)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := sched.Stop(stopCtx); err != nil {
				log.WithError(err).Warn("snapshot job did not finish before shutdown")
			}
		}()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           h2c.NewHandler(c.Handler(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"port":  cfg.Port,
			"store": cfg.StoreBackend,
		}).Info("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// openStore connects the configured backend and returns its cleanup function.
func openStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Info("Using in-memory store for local development")
		return store.NewMemoryStore(), func() {}, nil

	case config.BackendPostgres:
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("failed to migrate postgres schema: %w", err)
		}
		log.Info("Using postgres store")
		return pg, pg.Close, nil

	default:
		client, err := firestore.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Firestore client: %w", err)
		}
		log.WithField("project", cfg.ProjectID).Info("Using Firestore store")
		return store.NewFirestoreStore(client), func() { client.Close() }, nil
	}
}
