// Define an interface for all scrapers
// Ensure consistency

package scraper

import (
	"context"

	"go-vagas-pipeline/internal/models"

	"github.com/playwright-community/playwright-go"
)

//Scraper defines the interface that all job board scrapers must implement
type Scraper interface {
	//Scrape postings from the board
	Scrape(ctx context.Context, page playwright.Page) ([]models.RawJob, error)

	//Name is the board name (Catho, ...)
	Name() string
}

// Sink receives each posting as soon as it is scraped, so a crash mid-run keeps what was collected.
type Sink interface {
	Upsert(ctx context.Context, job models.RawJob) error
}
