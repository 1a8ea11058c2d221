// Package projecting contém o cálculo de projeção de investimentos e o
// serviço que compara os cenários base e "what-if".
package projecting

import "github.com/vfg2006/investment-projection-api/pkg/utils"

const monthsPerYear = 12

// Project simula mês a mês o crescimento do saldo com juros compostos e
// aporte mensal no fim de cada período. Retorna o saldo no ano zero seguido
// do saldo ao final de cada ano, arredondado para duas casas. Apenas os
// pontos anuais são arredondados; o saldo mensal mantém precisão total.
//
// Nenhuma validação é feita aqui: aportes e taxas negativos são aceitos e
// um período não positivo devolve apenas o saldo inicial.
func Project(initial, monthlyContribution float64, years int, annualReturnPercent float64) []float64 {
	monthlyRate := annualReturnPercent / 100 / monthsPerYear
	totalMonths := years * monthsPerYear

	balance := initial
	result := make([]float64, 1, max(years, 0)+1)
	result[0] = balance

	for m := 1; m <= totalMonths; m++ {
		// A conversão explícita impede FMA e mantém o resultado igual em todas as arquiteturas
		balance = float64(balance*(1+monthlyRate)) + monthlyContribution
		if m%monthsPerYear == 0 {
			result = append(result, utils.RoundWithTwoDecimalPlace(balance))
		}
	}

	return result
}
