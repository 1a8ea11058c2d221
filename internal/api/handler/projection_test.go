package handler

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/investment-projection-api/infrastructure/cache"
	"github.com/vfg2006/investment-projection-api/internal/api/handler/router"
	"github.com/vfg2006/investment-projection-api/internal/domain"
	"github.com/vfg2006/investment-projection-api/internal/usecases/projecting"
	"github.com/vfg2006/investment-projection-api/pkg/apiErrors"
	"github.com/vfg2006/investment-projection-api/pkg/log"
)

type errorBody struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []projecting.FieldError `json:"details"`
}

func newTestRouter(service projecting.Projector) http.Handler {
	return router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Projections(service)...),
	)
}

func postProjection(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/investment_projection", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestInvestmentProjection_Success(t *testing.T) {
	log.SetupTestLogger()
	h := newTestRouter(projecting.NewService(cache.NewNoopCache(), 100))

	rec := postProjection(t, h, `{
		"initialInvestment": 1000,
		"monthlyContribution": 100,
		"investmentPeriod": 1,
		"annualReturn": 12,
		"whatIfMonthlyContribution": 200,
		"whatIfAnnualReturn": 12
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response domain.ComparisonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	require.Len(t, response.Baseline, 2)
	require.Len(t, response.WhatIf, 2)
	assert.Equal(t, 1000.0, response.Baseline[0])
	assert.Equal(t, 2395.08, response.Baseline[1])
	assert.Greater(t, response.WhatIf[1], response.Baseline[1])
}

func TestInvestmentProjection_ResponseShape(t *testing.T) {
	log.SetupTestLogger()
	h := newTestRouter(projecting.NewService(nil, 100))

	rec := postProjection(t, h, `{"initialInvestment":5000,"monthlyContribution":0,"investmentPeriod":2,"annualReturn":0,"whatIfMonthlyContribution":0,"whatIfAnnualReturn":0}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"baseline":[5000,5000,5000],"whatIf":[5000,5000,5000]}`, rec.Body.String())
}

func TestInvestmentProjection_Errors(t *testing.T) {
	log.SetupTestLogger()
	h := newTestRouter(projecting.NewService(nil, 50))

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantFields []string
	}{
		{
			name:       "json malformado",
			body:       `{"initialInvestment": `,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "tipo inválido",
			body:       `{"initialInvestment":"mil","monthlyContribution":100,"investmentPeriod":1,"annualReturn":12,"whatIfMonthlyContribution":200,"whatIfAnnualReturn":12}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "período fracionado",
			body:       `{"initialInvestment":1000,"monthlyContribution":100,"investmentPeriod":1.5,"annualReturn":12,"whatIfMonthlyContribution":200,"whatIfAnnualReturn":12}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "campos ausentes",
			body:       `{"initialInvestment":1000,"investmentPeriod":1,"annualReturn":12}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrMissingRequiredData,
			wantFields: []string{"monthlyContribution", "whatIfMonthlyContribution", "whatIfAnnualReturn"},
		},
		{
			name:       "campo nulo conta como ausente",
			body:       `{"initialInvestment":null,"monthlyContribution":100,"investmentPeriod":1,"annualReturn":12,"whatIfMonthlyContribution":200,"whatIfAnnualReturn":12}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrMissingRequiredData,
			wantFields: []string{"initialInvestment"},
		},
		{
			name:       "período acima do máximo",
			body:       `{"initialInvestment":1000,"monthlyContribution":100,"investmentPeriod":51,"annualReturn":12,"whatIfMonthlyContribution":200,"whatIfAnnualReturn":12}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
			wantFields: []string{"investmentPeriod"},
		},
		{
			name:       "resultado fora do intervalo numérico",
			body:       `{"initialInvestment":1e308,"monthlyContribution":0,"investmentPeriod":5,"annualReturn":12,"whatIfMonthlyContribution":0,"whatIfAnnualReturn":12}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
			wantFields: []string{"initialInvestment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postProjection(t, h, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)

			fields := make([]string, 0, len(body.Details))
			for _, d := range body.Details {
				fields = append(fields, d.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

type nonFiniteProjector struct {
	projecting.Projector
}

func (nonFiniteProjector) Compare(context.Context, domain.ComparisonInput) (*domain.ComparisonResponse, error) {
	return &domain.ComparisonResponse{
		Baseline: domain.ProjectionResult{1000, math.Inf(1)},
		WhatIf:   domain.ProjectionResult{1000, math.NaN()},
	}, nil
}

func TestInvestmentProjection_EncodeFailureReturnsServerError(t *testing.T) {
	log.SetupTestLogger()
	h := newTestRouter(nonFiniteProjector{Projector: projecting.NewService(nil, 100)})

	rec := postProjection(t, h, `{"initialInvestment":1000,"monthlyContribution":100,"investmentPeriod":1,"annualReturn":12,"whatIfMonthlyContribution":200,"whatIfAnnualReturn":12}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apiErrors.ErrInternalServer, body.Code)
}

type failingProjector struct {
	projecting.Projector
}

func (failingProjector) Compare(context.Context, domain.ComparisonInput) (*domain.ComparisonResponse, error) {
	return nil, errors.New("falha inesperada")
}

func TestInvestmentProjection_UnexpectedError(t *testing.T) {
	log.SetupTestLogger()
	h := newTestRouter(failingProjector{Projector: projecting.NewService(nil, 100)})

	rec := postProjection(t, h, `{"initialInvestment":1000,"monthlyContribution":100,"investmentPeriod":1,"annualReturn":12,"whatIfMonthlyContribution":200,"whatIfAnnualReturn":12}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestRouter(projecting.NewService(nil, 100))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrNotFound)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/investment_projection", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrMethodNotAllowed)
}

func TestBackendTestAndHealthcheck(t *testing.T) {
	h := newTestRouter(projecting.NewService(nil, 100))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Test backend"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

type staticStatus map[string]any

func (s staticStatus) GetStatus() map[string]any {
	return s
}

func TestGetCacheStatus(t *testing.T) {
	h := router.New(router.WithRoutes(CacheStatus("memory", staticStatus{"enabled": true, "last_purged": 2})...))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cache/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"driver":"memory","cleanup":{"enabled":true,"last_purged":2}}`, rec.Body.String())
}
