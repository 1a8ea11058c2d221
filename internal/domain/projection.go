package domain

// ProjectionInput agrupa os parâmetros de uma única simulação
type ProjectionInput struct {
	InitialInvestment   float64
	MonthlyContribution float64
	Years               int
	AnnualReturnPercent float64
}

// ProjectionResult contém o saldo ao final de cada ano, incluindo o ano zero
type ProjectionResult []float64

// ComparisonRequest é o corpo recebido em POST /api/investment_projection.
// Os campos são ponteiros para distinguir ausência de valor zero.
type ComparisonRequest struct {
	InitialInvestment         *float64 `json:"initialInvestment" validate:"required,gte=0"`
	MonthlyContribution       *float64 `json:"monthlyContribution" validate:"required"`
	InvestmentPeriod          *int     `json:"investmentPeriod" validate:"required,gte=0"`
	AnnualReturn              *float64 `json:"annualReturn" validate:"required"`
	WhatIfMonthlyContribution *float64 `json:"whatIfMonthlyContribution" validate:"required"`
	WhatIfAnnualReturn        *float64 `json:"whatIfAnnualReturn" validate:"required"`
}

// ComparisonInput é a versão já validada do ComparisonRequest
type ComparisonInput struct {
	InitialInvestment         float64
	MonthlyContribution       float64
	Years                     int
	AnnualReturn              float64
	WhatIfMonthlyContribution float64
	WhatIfAnnualReturn        float64
}

type ComparisonResponse struct {
	Baseline ProjectionResult `json:"baseline"`
	WhatIf   ProjectionResult `json:"whatIf"`
}

// ToInput converte a requisição em entrada do serviço. Deve ser chamado
// apenas depois da validação, pois desreferencia todos os campos.
func (r ComparisonRequest) ToInput() ComparisonInput {
	return ComparisonInput{
		InitialInvestment:         *r.InitialInvestment,
		MonthlyContribution:       *r.MonthlyContribution,
		Years:                     *r.InvestmentPeriod,
		AnnualReturn:              *r.AnnualReturn,
		WhatIfMonthlyContribution: *r.WhatIfMonthlyContribution,
		WhatIfAnnualReturn:        *r.WhatIfAnnualReturn,
	}
}

func (in ComparisonInput) Baseline() ProjectionInput {
	return ProjectionInput{
		InitialInvestment:   in.InitialInvestment,
		MonthlyContribution: in.MonthlyContribution,
		Years:               in.Years,
		AnnualReturnPercent: in.AnnualReturn,
	}
}

func (in ComparisonInput) WhatIf() ProjectionInput {
	return ProjectionInput{
		InitialInvestment:   in.InitialInvestment,
		MonthlyContribution: in.WhatIfMonthlyContribution,
		Years:               in.Years,
		AnnualReturnPercent: in.WhatIfAnnualReturn,
	}
}
