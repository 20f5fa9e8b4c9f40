package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/exporters"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -9 cannot be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work only after in-flight requests have drained.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// csrfSecret accepts a hex-encoded or raw secret. Empty disables CSRF.
func csrfSecret(raw string) []byte {
	if raw == "" {
		return nil
	}
	if secret, err := hex.DecodeString(raw); err == nil {
		return secret
	}
	return []byte(raw)
}

// startSnapshots returns a running scheduler, or nil when snapshots are
// disabled. The snapshot routes are only registered for a non-nil scheduler.
func startSnapshots(lister exporters.BookLister, cfg config.Snapshot) (*scheduler.SnapshotScheduler, context.CancelFunc, error) {
	if !cfg.Enabled {
		return nil, nil, nil
	}

	snapshots := scheduler.NewSnapshotScheduler(lister, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	if err := snapshots.Start(ctx); err != nil {
		cancel()
		return nil, nil, err
	}
	return snapshots, cancel, nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := books.NewRepository(db.DB)

	routerCfg := http_controllers.RouterConfig{
		Books:          repo,
		Health:         db,
		AllowedOrigins: cfg.Security.AllowedOrigins,
		CSRFSecret:     csrfSecret(cfg.Security.CSRFSecret),
		SecureCookies:  cfg.Security.SecureCookies,
		ReadOnly:       cfg.Security.ReadOnly,
		Version:        version,
	}

	if cfg.Security.ReadOnly {
		log.Printf("Read-only mode enabled - write operations will be blocked")
	}
	if len(routerCfg.CSRFSecret) == 0 {
		log.Printf("WARNING: CSRF_SECRET is not set. CSRF protection is disabled.")
	}

	var auditor *audit.Auditor
	if cfg.Audit.Dir != "" {
		auditor = audit.NewAuditor(cfg.Audit.Dir)
	}

	// Queue database sits next to the catalog file.
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(tasks.DBPath(cfg.Database.Path), tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		if auditor != nil {
			taskClient.Register(tasks.NewImportBooksQueue(repo, auditor))
		} else {
			taskClient.Register(tasks.NewImportBooksQueue(repo, nil))
		}

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		taskClient.Start(taskCtx)
		routerCfg.Imports = taskClient
		if auditor != nil {
			routerCfg.Reports = auditor
		}
	}

	snapshots, snapshotCtxCancel, err := startSnapshots(repo, cfg.Snapshot)
	if err != nil {
		log.Fatalf("Failed to start snapshot scheduler: %v", err)
	}
	if snapshots != nil {
		routerCfg.Snapshots = snapshots
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if snapshots != nil {
			snapshots.Stop()
			snapshotCtxCancel()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
