// Package cache contém as implementações de cache dos resultados de projeção
package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vfg2006/investment-projection-api/internal/domain"
)

//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks

type CacheRepository interface {
	Get(ctx context.Context, key string) ([]float64, bool)
	Set(ctx context.Context, key string, value []float64) error
	Delete(ctx context.Context, key string) error
}

// Purger é implementado pelos caches que precisam de limpeza periódica
type Purger interface {
	PurgeExpired() int
	Len() int
}

// ProjectionKey monta a chave determinística de uma simulação
func ProjectionKey(in domain.ProjectionInput) string {
	return fmt.Sprintf(
		"projection:%s:%s:%d:%s",
		formatFloat(in.InitialInvestment),
		formatFloat(in.MonthlyContribution),
		in.Years,
		formatFloat(in.AnnualReturnPercent),
	)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func clone(values []float64) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out
}

// NoopCache é usado quando o cache está desabilitado
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (NoopCache) Get(context.Context, string) ([]float64, bool) {
	return nil, false
}

func (NoopCache) Set(context.Context, string, []float64) error {
	return nil
}

func (NoopCache) Delete(context.Context, string) error {
	return nil
}
