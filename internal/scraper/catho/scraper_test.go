package catho

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"go-vagas-pipeline/internal/browser"
	"go-vagas-pipeline/internal/config"
	"go-vagas-pipeline/internal/models"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	jobs []models.RawJob
}

func (m *memorySink) Upsert(_ context.Context, job models.RawJob) error {
	m.jobs = append(m.jobs, job)
	return nil
}

//helper start headless browser, needs installed playwright drivers
func setupPage(t *testing.T) playwright.Page {
	if os.Getenv("PLAYWRIGHT_TESTS") == "" {
		t.Skip("set PLAYWRIGHT_TESTS=1 to run browser tests")
	}
	pm, err := browser.NewPlaywright(context.Background(), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pm.Close() })

	bctx, err := pm.NewContext(nil)
	require.NoError(t, err)
	page, err := bctx.NewPage()
	require.NoError(t, err)
	return page
}

func TestCathoScraper_Scrape_Mocked(t *testing.T) {
	page := setupPage(t)

	detailHTML := `<html><head><title>Advogado Júnior</title></head><body><main>
<h1>Advogado Júnior</h1><p class="company-name">Escritório Gama</p><p class="location">Recife - PE</p>
</main></body></html>`

	require.NoError(t, page.Route("**/*", func(route playwright.Route) {
		body := listingHTML
		if strings.Contains(route.Request().URL(), "/vagas/vendedor-interno/") || strings.Contains(route.Request().URL(), "/vagas/analista-de-dados/") {
			body = detailHTML
		}
		_ = route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(200),
			ContentType: playwright.String("text/html; charset=utf-8"),
			Body:        body,
		})
	}))

	sink := &memorySink{}
	s := NewCathoScraper(Options{
		Sectors:  []config.Sector{{Name: "Juridica", URL: "https://www.catho.com.br/vagas/area-juridica/"}},
		MaxPages: 1,
		Sink:     sink,
		MinDelay: 1,
		MaxDelay: 2,
	})

	jobs, err := s.Scrape(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Advogado Júnior", jobs[0].Title)
	assert.Equal(t, "Recife - PE", jobs[0].Location)
	assert.Equal(t, "Juridica", jobs[0].Sector)
	assert.Len(t, sink.jobs, 2)
}

func TestCathoScraper_Scrape_Cloudflare(t *testing.T) {
	page := setupPage(t)

	require.NoError(t, page.Route("**/*", func(route playwright.Route) {
		_ = route.Fulfill(playwright.RouteFulfillOptions{
			Status: playwright.Int(200),
			Body:   `<html><title>Attention Required! | Cloudflare</title><body><h1>Please verify you are a human</h1></body></html>`,
		})
	}))

	s := NewCathoScraper(Options{
		Sectors: []config.Sector{{Name: "Saude", URL: "https://www.catho.com.br/vagas/?area_id%5B0%5D=13"}},
		Shots:   browser.NewScreenshotDebugger(t.TempDir()),
	})
	jobs, err := s.Scrape(context.Background(), page)
	assert.NoError(t, err)
	assert.Empty(t, jobs, "Should return 0 jobs when Cloudflare blocks everything")
}

func TestCathoScraper_Scrape_UnparseableListingsEndSector(t *testing.T) {
	page := setupPage(t)

	var listings atomic.Int32
	require.NoError(t, page.Route("**/*", func(route playwright.Route) {
		if route.Request().IsNavigationRequest() {
			listings.Add(1)
		}
		_ = route.Fulfill(playwright.RouteFulfillOptions{
			Status: playwright.Int(200),
			Body:   listingHTML,
		})
	}))

	s := NewCathoScraper(Options{
		Sectors:  []config.Sector{{Name: "Varejo", URL: "https://www.catho.com.br/vagas/area-varejo/"}},
		AllPages: true,
	})
	s.links = func(string, string) ([]string, error) {
		return nil, errors.New("broken markup")
	}

	jobs, err := s.Scrape(context.Background(), page)
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.EqualValues(t, maxEmptyPages, listings.Load())
}
