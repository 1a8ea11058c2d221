package projecting

import (
	"context"

	"github.com/vfg2006/investment-projection-api/infrastructure/cache"
	"github.com/vfg2006/investment-projection-api/internal/domain"
	"github.com/vfg2006/investment-projection-api/pkg/apiErrors"
	"github.com/vfg2006/investment-projection-api/pkg/log"
	"github.com/vfg2006/investment-projection-api/pkg/utils"
)

type Projector interface {
	Validate(req domain.ComparisonRequest) (domain.ComparisonInput, error)
	Compare(ctx context.Context, in domain.ComparisonInput) (*domain.ComparisonResponse, error)
}

type Service struct {
	cache     cache.CacheRepository
	validator *RequestValidator
}

func NewService(cacheRepo cache.CacheRepository, maxYears int) Projector {
	if cacheRepo == nil {
		cacheRepo = cache.NewNoopCache()
	}

	return &Service{
		cache:     cacheRepo,
		validator: NewRequestValidator(maxYears),
	}
}

func (s *Service) Validate(req domain.ComparisonRequest) (domain.ComparisonInput, error) {
	return s.validator.Validate(req)
}

// Compare calcula os cenários base e "what-if", que compartilham o
// investimento inicial e o período
func (s *Service) Compare(ctx context.Context, in domain.ComparisonInput) (*domain.ComparisonResponse, error) {
	baseline, err := s.project(ctx, in.Baseline())
	if err != nil {
		return nil, err
	}

	whatIf, err := s.project(ctx, in.WhatIf())
	if err != nil {
		return nil, err
	}

	return &domain.ComparisonResponse{
		Baseline: baseline,
		WhatIf:   whatIf,
	}, nil
}

// project consulta o cache antes de rodar a simulação. Falhas de cache
// apenas geram log. Resultados não finitos não são gravados no cache.
func (s *Service) project(ctx context.Context, in domain.ProjectionInput) (domain.ProjectionResult, error) {
	logger := log.ForContext(ctx)
	key := cache.ProjectionKey(in)

	if cached, ok := s.cache.Get(ctx, key); ok && len(cached) == in.Years+1 {
		logger.WithField("cache_key", key).Debug("projection: resultado obtido do cache")
		return cached, nil
	}

	result := Project(in.InitialInvestment, in.MonthlyContribution, in.Years, in.AnnualReturnPercent)
	if !utils.IsFinite(result) {
		logger.WithField("years", in.Years).Warn("projection: resultado excede o intervalo numérico")
		return nil, NewProjectionError(ErrResultOverflow, apiErrors.ErrInvalidRequest, []FieldError{
			{
				Field:   "initialInvestment",
				Message: "Projected balance exceeds the supported numeric range",
				Type:    "overflow",
			},
		})
	}

	if err := s.cache.Set(ctx, key, result); err != nil {
		logger.WithError(err).WithField("cache_key", key).Warn("projection: erro ao gravar resultado no cache")
	}

	return result, nil
}
