package handler

import (
	"net/http"

	"github.com/vfg2006/investment-projection-api/pkg/log"
)

// CacheStatusReporter é implementado pelo agendador de limpeza de cache
type CacheStatusReporter interface {
	GetStatus() map[string]any
}

// GetCacheStatus retorna o backend de cache em uso e o estado da limpeza agendada
func GetCacheStatus(driver string, reporter CacheStatusReporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"driver": driver,
		}
		if reporter != nil {
			response["cleanup"] = reporter.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("cache-status: erro ao codificar resposta")
		}
	})
}
