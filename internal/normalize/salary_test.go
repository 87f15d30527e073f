package normalize

import (
	"testing"

	"go-vagas-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBRLNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1.234,56", 1234.56, true},
		{"1,500", 1500, true},
		{"2,5", 2.5, true},
		{"3.500", 3500, true},
		{"3.5", 3.5, true},
		{"2.000,00.", 2000, true},
		{"1.000.000", 1000000, true},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseBRLNumber(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 0.0001)
			}
		})
	}
}

func TestExtractSalary(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name       string
		text       string
		wantMin    *float64
		wantMax    *float64
		wantType   string
		wantPeriod string
	}{
		{
			name:       "range with currency on both sides",
			text:       "Salário: R$ 2.500,00 a R$ 3.000,00",
			wantMin:    f(2500),
			wantMax:    f(3000),
			wantType:   models.SalaryTypeRange,
			wantPeriod: models.SalaryPeriodMonthly,
		},
		{
			name:       "reversed range is sorted",
			text:       "De R$ 3.000 até R$ 2.000 por mês",
			wantMin:    f(2000),
			wantMax:    f(3000),
			wantType:   models.SalaryTypeRange,
			wantPeriod: models.SalaryPeriodMonthly,
		},
		{
			name:       "hourly single value",
			text:       "Pagamento de R$ 25,00 por hora trabalhada",
			wantMin:    f(25),
			wantType:   models.SalaryTypeMinimum,
			wantPeriod: models.SalaryPeriodHourly,
		},
		{
			name:       "to be agreed",
			text:       "Salário a combinar",
			wantType:   models.SalaryTypeNegotiable,
			wantPeriod: models.SalaryPeriodMonthly,
		},
		{
			name:       "small bare number is not a salary",
			text:       "Salário 13 e férias",
			wantType:   models.SalaryTypeNegotiable,
			wantPeriod: models.SalaryPeriodMonthly,
		},
		{
			name:       "thirteenth salary is not the top of a range",
			text:       "Salário de R$ 1.800,00 e 13º salário",
			wantMin:    f(1800),
			wantType:   models.SalaryTypeMinimum,
			wantPeriod: models.SalaryPeriodMonthly,
		},
		{
			name:       "weekly hours are not the bottom of a range",
			text:       "Salário: R$ 2.000,00 - 44 horas semanais",
			wantMin:    f(2000),
			wantType:   models.SalaryTypeMinimum,
			wantPeriod: models.SalaryPeriodMonthly,
		},
		{
			name:       "range without currency marker",
			text:       "Remuneração entre 2.000 e 2.800 mensais",
			wantMin:    f(2000),
			wantMax:    f(2800),
			wantType:   models.SalaryTypeRange,
			wantPeriod: models.SalaryPeriodMonthly,
		},
		{
			name:       "empty",
			text:       "",
			wantType:   models.SalaryTypeNegotiable,
			wantPeriod: models.SalaryPeriodMonthly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSalary(tt.text)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantPeriod, got.Period)
			assert.Equal(t, models.CurrencyBRL, got.Currency)
			if tt.wantMin == nil {
				assert.Nil(t, got.Min)
			} else {
				require.NotNil(t, got.Min)
				assert.InDelta(t, *tt.wantMin, *got.Min, 0.001)
			}
			if tt.wantMax == nil {
				assert.Nil(t, got.Max)
			} else {
				require.NotNil(t, got.Max)
				assert.InDelta(t, *tt.wantMax, *got.Max, 0.001)
			}
		})
	}
}

func TestExtractSalary_Commission(t *testing.T) {
	got := ExtractSalary("Fixo de R$ 1.500 + comissão de 5% sobre vendas")
	require.NotNil(t, got.Commission)
	assert.InDelta(t, 5.0, *got.Commission, 0.001)
	assert.True(t, got.HasCommission)
	require.NotNil(t, got.Min)
	assert.InDelta(t, 1500.0, *got.Min, 0.001)

	mentioned := ExtractSalary("Salário fixo mais comissão")
	assert.Nil(t, mentioned.Commission)
	assert.True(t, mentioned.HasCommission)
}
