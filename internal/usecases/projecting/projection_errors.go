package projecting

import (
	"fmt"

	"github.com/pkg/errors"
)

// Erros de validação da fronteira HTTP
var (
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidType       = errors.New("field has an invalid type")
	ErrOutOfRange        = errors.New("field is out of range")
	ErrPeriodTooLong     = errors.New("investment period exceeds the maximum allowed")
	ErrProjectionFailure = errors.New("projection could not be computed")
	ErrResultOverflow    = errors.New("projection result is not a finite number")
)

// FieldError descreve um problema em um campo específico da requisição
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ProjectionError é um erro com o código da API e detalhes por campo
type ProjectionError struct {
	Err    error
	Code   string
	Fields []FieldError
}

func (e *ProjectionError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %d field(s)", e.Err.Error(), len(e.Fields))
	}
	return e.Err.Error()
}

func (e *ProjectionError) Unwrap() error {
	return e.Err
}

func NewProjectionError(err error, code string, fields []FieldError) *ProjectionError {
	return &ProjectionError{
		Err:    err,
		Code:   code,
		Fields: fields,
	}
}
