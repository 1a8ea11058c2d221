// Package scheduler contém os serviços de agendamento em background
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/investment-projection-api/infrastructure/cache"
	"github.com/vfg2006/investment-projection-api/internal/config"
)

type CacheCleanupConfig struct {
	CronSchedule string
	Enabled      bool
}

// CacheCleanupService remove periodicamente as projeções expiradas do cache em memória
type CacheCleanupService struct {
	scheduler           *gocron.Scheduler
	purger              cache.Purger
	config              CacheCleanupConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastPurged          int
}

// NewCacheCleanupService recebe purger nil quando o backend não precisa
// de limpeza (Redis expira as chaves sozinho)
func NewCacheCleanupService(purger cache.Purger, cfg *config.Config) *CacheCleanupService {
	cleanupConfig := CacheCleanupConfig{
		CronSchedule: cfg.CacheCleanup.CronSchedule,
		Enabled:      cfg.CacheCleanup.Enabled && purger != nil,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cleanupConfig.CronSchedule,
		"enabled":       cleanupConfig.Enabled,
	}).Info("Configuração do agendador de limpeza de cache carregada")

	return &CacheCleanupService{
		scheduler: gocron.NewScheduler(time.Local),
		purger:    purger,
		config:    cleanupConfig,
	}
}

func (s *CacheCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de cache desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de limpeza de cache")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(s.RunCleanup)
	if err != nil {
		return errors.Wrap(err, "erro ao agendar limpeza de cache")
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de limpeza de cache")
		s.scheduler.Stop()
	}()

	return nil
}

// RunCleanup executa uma limpeza; chamadas concorrentes são ignoradas
func (s *CacheCleanupService) RunCleanup() {
	if s.purger == nil {
		return
	}

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Limpeza de cache já está em execução")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	purged := s.purger.PurgeExpired()

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastPurged = purged
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"purged":    purged,
		"remaining": s.purger.Len(),
	}).Info("Limpeza de cache concluída")
}

// TriggerManualSync dispara a limpeza fora do agendamento
func (s *CacheCleanupService) TriggerManualSync() {
	go s.RunCleanup()
}

func (s *CacheCleanupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"enabled":     s.config.Enabled,
		"running":     s.syncRunning,
		"cron":        s.config.CronSchedule,
		"last_purged": s.lastPurged,
	}

	if !s.lastSyncStartedAt.IsZero() {
		status["last_started_at"] = s.lastSyncStartedAt.Format(time.RFC3339)
	}
	if !s.lastSyncCompletedAt.IsZero() {
		status["last_completed_at"] = s.lastSyncCompletedAt.Format(time.RFC3339)
	}

	if s.purger != nil {
		status["entries"] = s.purger.Len()
	}

	return status
}
