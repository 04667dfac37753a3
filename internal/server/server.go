package server

import (
	"fmt"
	"net/http"
	"time"

	"todoapi/internal/config"
	"todoapi/internal/service"
)

type Server struct {
	todoService service.TodoService
}

func NewServer(cfg config.Config, todoService service.TodoService) *http.Server {
	appServer := &Server{
		todoService: todoService,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
