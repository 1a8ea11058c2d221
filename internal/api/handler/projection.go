package handler

import (
	"bytes"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/investment-projection-api/internal/domain"
	"github.com/vfg2006/investment-projection-api/internal/usecases/projecting"
	"github.com/vfg2006/investment-projection-api/pkg/apiErrors"
	"github.com/vfg2006/investment-projection-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxRequestBodyBytes = 1 << 16

// InvestmentProjection compara a projeção base com o cenário "what-if"
func InvestmentProjection(service projecting.Projector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req domain.ComparisonRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
			logger.WithError(err).Warn("investment-projection: corpo da requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de requisição inválido", nil)
			return
		}

		input, err := service.Validate(req)
		if err != nil {
			handleProjectionError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"initial_investment": input.InitialInvestment,
			"years":              input.Years,
		}).Debug("investment-projection: calculando cenários")

		response, err := service.Compare(r.Context(), input)
		if err != nil {
			handleProjectionError(w, logger, err)
			return
		}

		var body bytes.Buffer
		if err := json.NewEncoder(&body).Encode(response); err != nil {
			logger.WithError(err).Error("investment-projection: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular projeção", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(body.Bytes()); err != nil {
			logger.WithError(err).Error("investment-projection: erro ao escrever resposta")
		}
	})
}

// handleProjectionError traduz ProjectionError para a resposta padronizada
func handleProjectionError(w http.ResponseWriter, logger log.Logger, err error) {
	var projErr *projecting.ProjectionError
	if errors.As(err, &projErr) {
		logger.WithError(err).Warn("investment-projection: requisição rejeitada")

		var details any
		if len(projErr.Fields) > 0 {
			details = projErr.Fields
		}
		apiErrors.WriteError(w, projErr.Code, messageFor(projErr.Err), details)
		return
	}

	logger.WithError(err).Error("investment-projection: erro inesperado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular projeção", nil)
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, projecting.ErrMissingField):
		return "Campos obrigatórios ausentes"
	case errors.Is(err, projecting.ErrInvalidType):
		return "Formato de requisição inválido"
	case errors.Is(err, projecting.ErrPeriodTooLong):
		return "Período de investimento acima do permitido"
	case errors.Is(err, projecting.ErrOutOfRange):
		return "Valores fora da faixa permitida"
	case errors.Is(err, projecting.ErrResultOverflow):
		return "Valores resultam em uma projeção fora do intervalo suportado"
	default:
		return "Erro ao calcular projeção"
	}
}

// BackendTest mantém a rota de verificação usada pelo frontend
func BackendTest() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{
			"message": "Test backend",
		}); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("backend-test: erro ao codificar resposta")
		}
	})
}
