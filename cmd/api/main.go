package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"todoapi/internal/config"
	"todoapi/internal/database"
	"todoapi/internal/domain"
	"todoapi/internal/repository"
	"todoapi/internal/server"
	"todoapi/internal/service"
	"todoapi/internal/snapshot"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// In-flight requests get 5 seconds to finish.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Error("server forced to shutdown", "err", err)
	}

	if dbService != nil {
		if err := dbService.Close(); err != nil {
			log.Error("closing database connection pool", "err", err)
		}
	}

	log.Info("server exiting")
	done <- true
}

func main() {
	cfg := config.Load()

	var (
		todoService service.TodoService
		dbService   database.Service
	)

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		var err error
		dbService, err = database.New(cfg.DB)
		if err != nil {
			log.Fatal("database init failed", "err", err)
		}
		if err := dbService.Health(context.Background()); err != nil {
			log.Fatal("database unreachable", "err", err)
		}
		if err := dbService.GetDB().AutoMigrate(&domain.Todo{}); err != nil {
			log.Fatal("database auto-migration failed", "err", err)
		}
		todoService = service.NewTodoService(repository.NewGormTodoRepository(dbService.GetDB()), nil)

	case config.DriverFile:
		repo := repository.NewMemoryRepository()
		gateway := snapshot.NewGateway(cfg.DataFile, repo)
		// A failed load is not fatal: the service starts with an empty
		// store and the snapshot is rewritten on the next mutation.
		if err := gateway.Load(); err != nil {
			log.Error("snapshot load failed, starting empty", "path", cfg.DataFile, "err", err)
		}
		todoService = service.NewTodoService(repo, gateway)

	default:
		log.Fatal("unknown storage driver", "driver", cfg.StorageDriver)
	}

	apiServer := server.NewServer(cfg, todoService)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, done)

	log.Info("starting server", "addr", apiServer.Addr, "driver", cfg.StorageDriver)
	err := apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("HTTP server error", "err", err)
	}

	<-done
}
