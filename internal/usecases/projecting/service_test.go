package projecting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/investment-projection-api/infrastructure/cache"
	"github.com/vfg2006/investment-projection-api/infrastructure/cache/mocks"
	"github.com/vfg2006/investment-projection-api/internal/domain"
	"github.com/vfg2006/investment-projection-api/pkg/apiErrors"
	"github.com/vfg2006/investment-projection-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func comparisonInput() domain.ComparisonInput {
	return domain.ComparisonInput{
		InitialInvestment:         1000,
		MonthlyContribution:       100,
		Years:                     1,
		AnnualReturn:              12,
		WhatIfMonthlyContribution: 200,
		WhatIfAnnualReturn:        12,
	}
}

func TestService_Compare_CacheMiss(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	in := comparisonInput()
	baselineKey := cache.ProjectionKey(in.Baseline())
	whatIfKey := cache.ProjectionKey(in.WhatIf())

	mockCache := mocks.NewMockCacheRepository(ctrl)
	gomock.InOrder(
		mockCache.EXPECT().Get(gomock.Any(), baselineKey).Return(nil, false),
		mockCache.EXPECT().Set(gomock.Any(), baselineKey, []float64{1000, 2395.08}).Return(nil),
		mockCache.EXPECT().Get(gomock.Any(), whatIfKey).Return(nil, false),
		mockCache.EXPECT().Set(gomock.Any(), whatIfKey, []float64{1000, 3663.33}).Return(nil),
	)

	service := NewService(mockCache, 100)
	response, err := service.Compare(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, domain.ProjectionResult{1000, 2395.08}, response.Baseline)
	assert.Equal(t, domain.ProjectionResult{1000, 3663.33}, response.WhatIf)
}

func TestService_Compare_CacheHit(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	in := comparisonInput()

	// Valores do cache são devolvidos sem recalcular
	mockCache := mocks.NewMockCacheRepository(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), cache.ProjectionKey(in.Baseline())).Return([]float64{1, 2}, true)
	mockCache.EXPECT().Get(gomock.Any(), cache.ProjectionKey(in.WhatIf())).Return([]float64{3, 4}, true)

	service := NewService(mockCache, 100)
	response, err := service.Compare(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, domain.ProjectionResult{1, 2}, response.Baseline)
	assert.Equal(t, domain.ProjectionResult{3, 4}, response.WhatIf)
}

func TestService_Compare_IgnoresCachedValueWithWrongLength(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	in := comparisonInput()
	in.WhatIfMonthlyContribution = in.MonthlyContribution

	mockCache := mocks.NewMockCacheRepository(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]float64{1, 2, 3}, true).Times(2)
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	service := NewService(mockCache, 100)
	response, err := service.Compare(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, domain.ProjectionResult{1000, 2395.08}, response.Baseline)
	assert.Equal(t, response.Baseline, response.WhatIf)
}

func TestService_Compare_CacheWriteFailureIsNotFatal(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := mocks.NewMockCacheRepository(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false).Times(2)
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis fora do ar")).Times(2)

	service := NewService(mockCache, 100)
	response, err := service.Compare(context.Background(), comparisonInput())
	require.NoError(t, err)

	assert.Len(t, response.Baseline, 2)
	assert.Greater(t, response.WhatIf[1], response.Baseline[1])
}

func TestService_Compare_NonFiniteResultIsRejected(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	in := domain.ComparisonInput{
		InitialInvestment:  1e308,
		Years:              5,
		AnnualReturn:       12,
		WhatIfAnnualReturn: 12,
	}

	mockCache := mocks.NewMockCacheRepository(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), cache.ProjectionKey(in.Baseline())).Return(nil, false)
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	service := NewService(mockCache, 100)
	response, err := service.Compare(context.Background(), in)
	require.Error(t, err)
	assert.Nil(t, response)
	assert.True(t, errors.Is(err, ErrResultOverflow))

	var projErr *ProjectionError
	require.True(t, errors.As(err, &projErr))
	assert.Equal(t, apiErrors.ErrInvalidRequest, projErr.Code)
	require.Len(t, projErr.Fields, 1)
	assert.Equal(t, "initialInvestment", projErr.Fields[0].Field)
}

func TestService_NilCacheUsesNoop(t *testing.T) {
	service := NewService(nil, 100)

	response, err := service.Compare(context.Background(), comparisonInput())
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectionResult{1000, 2395.08}, response.Baseline)
}

func TestService_Compare_ConcurrentCallers(t *testing.T) {
	service := NewService(cache.NewMemoryCache(time.Minute), 100)
	in := comparisonInput()

	var wg sync.WaitGroup
	results := make([]*domain.ComparisonResponse, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			response, err := service.Compare(context.Background(), in)
			assert.NoError(t, err)
			results[i] = response
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, domain.ProjectionResult{1000, 2395.08}, r.Baseline)
		assert.Equal(t, domain.ProjectionResult{1000, 3663.33}, r.WhatIf)
	}
}
