package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/investment-projection-api/infrastructure/cache"
	"github.com/vfg2006/investment-projection-api/internal/api"
	"github.com/vfg2006/investment-projection-api/internal/config"
	"github.com/vfg2006/investment-projection-api/internal/scheduler"
	"github.com/vfg2006/investment-projection-api/internal/usecases/projecting"
	"github.com/vfg2006/investment-projection-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cacheRepo, purger, closeCache := newCache(ctx, cfg)
	defer closeCache()

	projectionService := projecting.NewService(cacheRepo, cfg.Projection.MaxYears)

	cacheCleanupService := scheduler.NewCacheCleanupService(purger, cfg)
	if err := cacheCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de cache")
	}

	server, err := api.New(cfg, projectionService, cacheCleanupService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// newCache escolhe o backend de cache. Se o Redis estiver indisponível na
// inicialização, cai para o cache em memória.
func newCache(ctx context.Context, cfg *config.Config) (cache.CacheRepository, cache.Purger, func()) {
	noop := func() {}

	if !cfg.Cache.Enabled {
		logrus.Info("Cache de projeções desabilitado")
		return cache.NewNoopCache(), nil, noop
	}

	if cfg.Cache.Driver == config.CacheDriverRedis {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.TTL)

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		err := redisCache.Ping(pingCtx)
		if err == nil {
			logrus.WithField("addr", cfg.Redis.Addr).Info("Conexão com Redis estabelecida com sucesso")
			return redisCache, nil, func() {
				if err := redisCache.Close(); err != nil {
					logrus.WithError(err).Warn("Erro ao fechar conexão com Redis")
				}
			}
		}

		logrus.WithError(err).Warn("Redis indisponível, usando cache em memória")
		if closeErr := redisCache.Close(); closeErr != nil {
			logrus.WithError(closeErr).Warn("Erro ao fechar conexão com Redis")
		}
		cfg.Cache.Driver = config.CacheDriverMemory
	}

	memoryCache := cache.NewMemoryCache(cfg.Cache.TTL)
	return memoryCache, memoryCache, noop
}
