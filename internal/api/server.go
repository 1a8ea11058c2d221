package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/investment-projection-api/internal/api/handler"
	"github.com/vfg2006/investment-projection-api/internal/api/handler/router"
	"github.com/vfg2006/investment-projection-api/internal/config"
	"github.com/vfg2006/investment-projection-api/internal/usecases/projecting"
	"github.com/vfg2006/investment-projection-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer  *http.Server
	rateLimiter *middleware.RateLimiter
}

// New monta o roteamento e a cadeia de middlewares. O servidor não guarda
// estado de negócio, apenas a configuração das rotas.
func New(
	cfg *config.Config,
	projectionService projecting.Projector,
	cacheStatus handler.CacheStatusReporter,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Projections(projectionService)...),
		router.WithRoutes(handler.CacheStatus(cfg.Cache.Driver, cacheStatus)...),
	)

	for _, route := range rt.Routes() {
		logrus.WithFields(logrus.Fields{
			"method": route.Method,
			"path":   route.Path,
		}).Debug("Rota registrada")
	}

	srv := &Server{}

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
	}

	if cfg.RateLimit.Enabled {
		srv.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
		middlewares = append(middlewares, middleware.RateLimit(srv.rateLimiter))
	}

	srv.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           alice.New(middlewares...).Then(rt),
		ReadHeaderTimeout: 2 * time.Second,
	}

	return srv, nil
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	return s.httpServer.Shutdown(ctx)
}
