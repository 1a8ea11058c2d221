package projecting

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/investment-projection-api/internal/domain"
	"github.com/vfg2006/investment-projection-api/pkg/apiErrors"
)

type RequestValidator struct {
	validate *validator.Validate
	maxYears int
}

func NewRequestValidator(maxYears int) *RequestValidator {
	v := validator.New()

	// Usa o nome do campo JSON nas mensagens de erro
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestValidator{
		validate: v,
		maxYears: maxYears,
	}
}

// Validate verifica presença e faixa dos campos e devolve a entrada do
// serviço. Campos ausentes têm precedência sobre erros de faixa.
func (v *RequestValidator) Validate(req domain.ComparisonRequest) (domain.ComparisonInput, error) {
	if err := v.validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return domain.ComparisonInput{}, NewProjectionError(ErrInvalidType, apiErrors.ErrInvalidFormat, nil)
		}

		missing := make([]FieldError, 0)
		outOfRange := make([]FieldError, 0)
		for _, fe := range validationErrors {
			fieldErr := FieldError{
				Field:   fe.Field(),
				Message: fieldErrorMessage(fe),
				Type:    fe.Tag(),
			}
			if fe.Tag() == "required" {
				missing = append(missing, fieldErr)
			} else {
				outOfRange = append(outOfRange, fieldErr)
			}
		}

		if len(missing) > 0 {
			return domain.ComparisonInput{}, NewProjectionError(ErrMissingField, apiErrors.ErrMissingRequiredData, missing)
		}
		return domain.ComparisonInput{}, NewProjectionError(ErrOutOfRange, apiErrors.ErrInvalidRequest, outOfRange)
	}

	if err := v.validate.Var(*req.InvestmentPeriod, fmt.Sprintf("lte=%d", v.maxYears)); err != nil {
		return domain.ComparisonInput{}, NewProjectionError(ErrPeriodTooLong, apiErrors.ErrInvalidRequest, []FieldError{
			{
				Field:   "investmentPeriod",
				Message: fmt.Sprintf("Value must be less than or equal to %d", v.maxYears),
				Type:    "lte",
			},
		})
	}

	return req.ToInput(), nil
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "gte":
		return "Value must be greater than or equal to " + fe.Param()
	case "lte":
		return "Value must be less than or equal to " + fe.Param()
	default:
		return "Invalid value"
	}
}
