package handler

import (
	"net/http"

	"github.com/vfg2006/investment-projection-api/internal/api/handler/router"
	"github.com/vfg2006/investment-projection-api/internal/usecases/projecting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/api/test",
			Method:  http.MethodGet,
			Handler: BackendTest(),
		},
	}
}

func Projections(service projecting.Projector) []router.Route {
	return []router.Route{
		{
			Path:    "/api/investment_projection",
			Method:  http.MethodPost,
			Handler: InvestmentProjection(service),
		},
	}
}

func CacheStatus(driver string, reporter CacheStatusReporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cache/status",
			Method:  http.MethodGet,
			Handler: GetCacheStatus(driver, reporter),
		},
	}
}
