package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Location
	}{
		{
			name: "catho vacancy line",
			text: "Vendedor\n1 vaga: São Paulo - SP",
			want: Location{City: "São Paulo", State: "SP", Region: "Sudeste"},
		},
		{
			name: "city slash uf",
			text: "Oportunidade em Curitiba/PR para atuar no varejo",
			want: Location{City: "Curitiba", State: "PR", Region: "Sul"},
		},
		{
			name: "labelled with comma",
			text: "Localização: Recife, PE",
			want: Location{City: "Recife", State: "PE", Region: "Nordeste"},
		},
		{
			name: "known city without uf",
			text: "Trabalho presencial em Belo Horizonte.",
			want: Location{City: "Belo Horizonte", State: "MG", Region: "Sudeste"},
		},
		{
			name: "known city without accents",
			text: "Atuação na região de Sao Jose dos Campos",
			want: Location{City: "São José dos Campos", State: "SP", Region: "Sudeste"},
		},
		{
			name: "lowercase city name is a plain word",
			text: "Realizar contagem de estoque e reposição de mercadorias.",
			want: Location{},
		},
		{
			name: "holiday is not a city",
			text: "Vaga temporária de Natal para vendedor de loja.",
			want: Location{},
		},
		{
			name: "ambiguous city still resolves next to its uf",
			text: "Vaga temporária em Natal - RN",
			want: Location{City: "Natal", State: "RN", Region: "Nordeste"},
		},
		{
			name: "state name only",
			text: "Vaga para Rio Grande do Sul",
			want: Location{State: "RS", Region: "Sul"},
		},
		{
			name: "invalid uf is ignored",
			text: "Auxiliar Administrativo - RH",
			want: Location{},
		},
		{
			name: "empty",
			text: "",
			want: Location{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLocation(tt.text))
		})
	}
}

func TestParseLocationField(t *testing.T) {
	tests := []struct {
		in   string
		want Location
	}{
		{"São Paulo - SP", Location{City: "São Paulo", State: "SP", Region: "Sudeste"}},
		{"Belo Horizonte, mg", Location{City: "Belo Horizonte", State: "MG", Region: "Sudeste"}},
		{"Salvador (BA)", Location{City: "Salvador", State: "BA", Region: "Nordeste"}},
		{"Campinas", Location{City: "Campinas", State: "SP", Region: "Sudeste"}},
		{"Minas Gerais", Location{State: "MG", Region: "Sudeste"}},
		{"Remoto", Location{}},
		{"", Location{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLocationField(tt.in))
		})
	}
}

func TestRegionForState(t *testing.T) {
	assert.Equal(t, "Centro-Oeste", RegionForState("df"))
	assert.Equal(t, "Norte", RegionForState("AM"))
	assert.Equal(t, "", RegionForState("XX"))
	assert.True(t, IsValidUF("sc"))
	assert.False(t, IsValidUF("BR"))
}
