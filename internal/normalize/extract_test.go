package normalize

import (
	"strings"
	"testing"
	"time"

	"go-vagas-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDescription(t *testing.T) {
	in := "Vendedor Candidatura fácil\n\n\nLeia mais   envie seu currículo para rh@empresa.com.br\nAcesse https://www.catho.com.br/x"
	got := CleanDescription(in)

	assert.Contains(t, got, "Vendedor")
	assert.NotContains(t, got, "Candidatura")
	assert.NotContains(t, got, "Leia mais")
	assert.NotContains(t, got, "@")
	assert.NotContains(t, got, "http")
	assert.NotContains(t, got, "\n\n")
	assert.Equal(t, "", CleanDescription(""))
}

func TestStripAccents(t *testing.T) {
	assert.Equal(t, "Sao Paulo", StripAccents("São Paulo"))
	assert.Equal(t, "Senior Educacao", StripAccents("Sênior Educação"))
}

func TestExtractSeniority(t *testing.T) {
	tests := []struct {
		title, description string
		want               models.Seniority
	}{
		{"Analista de Marketing Sênior", "", models.SenioritySenior},
		{"Estagiário em Administração", "", models.SeniorityIntern},
		{"Gerente Comercial", "", models.SeniorityManager},
		{"Coordenadora de Enfermagem", "", models.SeniorityCoordinator},
		{"Desenvolvedor Jr", "", models.SeniorityJunior},
		{"Vendedor", "Nível: pleno", models.SeniorityMid},
		{"Vendedor", "Reporta ao gerente da loja", models.SeniorityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSeniority(tt.title, tt.description))
		})
	}
}

func TestExtractEmploymentType(t *testing.T) {
	tests := map[string]models.EmploymentType{
		"Regime de contratação: CLT (Efetivo)": models.EmploymentCLT,
		"Contratação como PJ":                  models.EmploymentPJ,
		"Vaga temporária para o fim de ano":    models.EmploymentTemporary,
		"Programa Jovem Aprendiz":              models.EmploymentApprentice,
		"Atendimento ao público":               models.EmploymentUnknown,
	}
	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, want, ExtractEmploymentType(text))
		})
	}
}

func TestExtractModality(t *testing.T) {
	tests := map[string]models.Modality{
		"Modelo híbrido, 3 dias presencial": models.ModalityHybrid,
		"Trabalho 100% home office":         models.ModalityRemote,
		"Vaga remota":                       models.ModalityRemote,
		"Atuação presencial na loja":        models.ModalityOnSite,
		"":                                  models.ModalityUnknown,
	}
	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, want, ExtractModality(text))
		})
	}
}

func TestExtractSchedule(t *testing.T) {
	assert.Equal(t, "Das 08h às 17h", ExtractSchedule("Horário: Das 08h às 17h, segunda a sexta"))
	assert.Equal(t, "08:00 às 18:00", ExtractSchedule("Jornada 08:00 às 18:00"))
	assert.Equal(t, "escala 12x36", ExtractSchedule("Trabalho em escala 12x36"))
	assert.Equal(t, "", ExtractSchedule("Sem informação"))
}

func TestExtractBenefits(t *testing.T) {
	got := ExtractBenefits("Oferecemos vale transporte, vale-refeição, plano de saúde e PLR.")
	assert.Equal(t, []string{"Vale Transporte", "Vale Refeição", "Plano de Saúde", "Participação nos Lucros"}, got)

	assert.Equal(t, []string{}, ExtractBenefits(""))
	assert.NotContains(t, ExtractBenefits("Vaga de vendedor"), "Vale Alimentação")
}

func TestExtractSkills(t *testing.T) {
	got := ExtractSkills("Conhecimento em Excel avançado, SQL e Power BI. Inglês intermediário.")
	assert.Equal(t, []string{"excel", "inglês", "power bi", "sql"}, got)

	m := NewSkillMatcher(map[string][]string{"Golang": {"golang", "go lang"}, "C++": {"c++"}})
	assert.Equal(t, []string{"c++", "golang"}, m.Extract("Experiência com Golang, C++ e Docker"))
	assert.Equal(t, []string{}, m.Extract(""))
}

func TestExtractSkills_Cap(t *testing.T) {
	text := "Excel, Word, SQL, Python, Java, Git, Linux, comunicação, liderança, negociação, vendas, " +
		"CRM, AutoCAD, Photoshop, Illustrator, inglês, espanhol e marketing digital."

	got := ExtractSkills(text)
	require.Len(t, got, maxSkills)
	assert.Equal(t, []string{
		"autocad", "comunicação", "crm", "espanhol", "excel", "git", "illustrator", "inglês",
		"java", "liderança", "linux", "marketing digital", "negociação", "photoshop", "python",
	}, got)
}

func TestExtractEducation(t *testing.T) {
	edu, level := ExtractEducation("Ensino médio completo")
	assert.Equal(t, []string{"ensino médio completo"}, edu)
	assert.Equal(t, EducationHighSchool, level)

	edu, level = ExtractEducation("Ensino superior completo em Administração. Desejável pós-graduação.")
	assert.Contains(t, edu, "ensino superior completo")
	assert.Contains(t, edu, "pós-graduação")
	assert.Equal(t, EducationPostgrad, level)

	edu, level = ExtractEducation("Técnico em Enfermagem e COREN ativo")
	assert.Equal(t, []string{"técnico em enfermagem"}, edu)
	assert.Equal(t, EducationHighSchool, level)

	edu, level = ExtractEducation("")
	assert.Empty(t, edu)
	assert.Equal(t, EducationUnknown, level)
}

func TestExtractExperience(t *testing.T) {
	tests := map[string]string{
		"Experiência de 2 anos na área":        "2 anos",
		"Mínimo 1 ano como vendedor":           "1 ano",
		"6 meses de experiência comprovada":    "6 meses",
		"Não é necessário experiência":         NoExperience,
		"Vaga para primeiro emprego":           NoExperience,
		"Experiência em vendas externas.":      "vendas externas",
		"Disponibilidade para viagens":         "",
	}
	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, want, ExtractExperience(text))
		})
	}
}

func TestExtractResponsibilities(t *testing.T) {
	text := "Descrição da vaga\nResponsabilidades:\n- Atender clientes no balcão da loja\n- Organizar o estoque semanalmente\n- Enviar currículo atualizado\nRequisitos:\n- Ensino médio completo"
	assert.Equal(t, []string{
		"Atender clientes no balcão da loja",
		"Organizar o estoque semanalmente",
	}, ExtractResponsibilities(text))

	fallback := ExtractResponsibilities("Você irá atender clientes e realizar vendas de produtos da loja.")
	assert.Equal(t, []string{"atender clientes e realizar vendas de produtos da loja"}, fallback)

	assert.Equal(t, []string{}, ExtractResponsibilities(""))
}

func TestExtractResponsibilities_DedupAndCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("Atividades:\n")
	for i := 0; i < 20; i++ {
		b.WriteString("- Conferir notas fiscais do lote ")
		b.WriteString(string(rune('A' + i)))
		b.WriteString("\n")
	}
	b.WriteString("- conferir notas fiscais do lote a\n")

	got := ExtractResponsibilities(b.String())
	assert.Len(t, got, maxResponsibilities)
	assert.Equal(t, "Conferir notas fiscais do lote A", got[0])
}

func TestExtractRequirements(t *testing.T) {
	text := "Requisitos:\n- Ensino médio completo\n- Experiência com vendas\nDiferenciais:\n- Inglês básico"
	must, nice := ExtractRequirements(text)
	assert.Equal(t, []string{"Ensino médio completo", "Experiência com vendas"}, must)
	assert.Equal(t, []string{"Inglês básico"}, nice)

	must, nice = ExtractRequirements("Buscamos pessoa com ensino médio completo e CNH categoria B. Desejável inglês.")
	assert.Contains(t, must, "ensino médio completo")
	assert.Contains(t, must, "CNH categoria B")
	assert.Equal(t, []string{"inglês"}, nice)
}

func TestExtractRequirements_Cap(t *testing.T) {
	var b strings.Builder
	b.WriteString("Requisitos:\n")
	for i := 0; i < 12; i++ {
		b.WriteString("- Conhecer o procedimento " + string(rune('A'+i)) + "\n")
	}
	b.WriteString("Diferenciais:\n")
	for i := 0; i < 12; i++ {
		b.WriteString("- Curso de idioma " + string(rune('A'+i)) + "\n")
	}

	must, nice := ExtractRequirements(b.String())
	require.Len(t, must, maxRequirements)
	require.Len(t, nice, maxRequirements)
	assert.Equal(t, "Conhecer o procedimento A", must[0])
	assert.Equal(t, "Conhecer o procedimento J", must[maxRequirements-1])
	assert.Equal(t, "Curso de idioma A", nice[0])
	assert.Equal(t, "Curso de idioma J", nice[maxRequirements-1])
}

func TestExtractPublishedDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	tests := map[string]string{
		"Publicada em 05/03/2025": "2025-03-05",
		"2025-02-28T10:00:00Z":    "2025-02-28",
		"Publicada há 3 dias":     "2025-03-07",
		"há 2 semanas":            "2025-02-24",
		"Publicada ontem":         "2025-03-09",
		"Publicada hoje":          "2025-03-10",
		"há 5 horas":              "2025-03-10",
		"31/02/2025":              "",
		"":                        "",
	}
	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, want, ExtractPublishedDate(text, now))
		})
	}
}

func TestExtractDescriptionDate(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	tests := map[string]string{
		"Hoje somos uma das maiores redes do país, fundada em 1998.": "",
		"Venha crescer com a gente esta semana!":                     "",
		"Ontem, hoje e sempre ao lado do cliente.":                   "",
		"Vaga publicada há 2 dias. Hoje contamos com 40 lojas.":      "2025-06-08",
		"Anunciada hoje | Vendedor externo":                          "2025-06-10",
		"Atualizado em 03/06/2025":                                   "2025-06-03",
		"Processo seletivo até 20/06/2025":                           "2025-06-20",
		"":                                                           "",
	}
	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, want, ExtractDescriptionDate(text, now))
		})
	}
}

func TestExtractCompany(t *testing.T) {
	tests := map[string]string{
		"Empresa: Alfa Comércio Ltda":                        "Alfa Comércio Ltda",
		"Empresa: Confidencial":                              "",
		"Contratamos para Beta Serviços S.A. em São Paulo":   "Beta Serviços S.A.",
		"Hospital Santa Maria busca técnicos de enfermagem": "Hospital Santa Maria",
		"": "",
	}
	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, want, ExtractCompany(text))
		})
	}
}

func TestExtractTagsAndPCD(t *testing.T) {
	assert.Equal(t, []string{"COMERCIAL E VENDAS", "VENDAS"}, ExtractTags("Vendedor externo para loja", "Comercial e Vendas"))
	assert.Equal(t, []string{"SAÚDE"}, ExtractTags("Técnico de enfermagem", DefaultSector))

	assert.True(t, IsPCD("Vaga exclusiva para PcD"))
	assert.True(t, IsPCD("Vaga para pessoas com deficiência"))
	assert.False(t, IsPCD("Vaga para vendedor"))
}

func TestSectorMapper(t *testing.T) {
	m, err := ReadSectorMapper(strings.NewReader("raw_sector,normalized_sector\nSaúde,Saúde e Bem-estar\nTI,Tecnologia\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "Saúde e Bem-estar", m.Normalize("saude"))
	assert.Equal(t, "Tecnologia", m.Normalize(" ti "))
	assert.Equal(t, "Logística", m.Normalize("Logística"))
	assert.Equal(t, DefaultSector, m.Normalize(""))

	var nilMapper *SectorMapper
	assert.Equal(t, "Vendas", nilMapper.Normalize("Vendas"))
}
