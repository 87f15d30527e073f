package catho

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go-vagas-pipeline/internal/browser"
	"go-vagas-pipeline/internal/config"
	"go-vagas-pipeline/internal/models"
	"go-vagas-pipeline/internal/scraper"

	"github.com/playwright-community/playwright-go"
)

// maxEmptyPages consecutive listing pages without links end a sector.
const maxEmptyPages = 3

type Options struct {
	Sectors  []config.Sector
	MaxPages int
	// AllPages ignores MaxPages and walks until a 404 or maxEmptyPages.
	AllPages bool
	Sink     scraper.Sink
	Shots    *browser.ScreenshotDebugger
	// Pause between detail pages, in milliseconds.
	MinDelay, MaxDelay int
}

type CathoScraper struct {
	opts  Options
	now   func() time.Time
	links func(html, base string) ([]string, error)
}

func NewCathoScraper(opts Options) *CathoScraper {
	if opts.MaxPages <= 0 {
		opts.MaxPages = 1
	}
	if opts.Shots == nil {
		opts.Shots = browser.NewScreenshotDebugger("")
	}
	if opts.MaxDelay == 0 {
		opts.MinDelay, opts.MaxDelay = 100, 300
	}
	return &CathoScraper{opts: opts, now: time.Now, links: ExtractJobLinks}
}

func (s *CathoScraper) Name() string {
	return "Catho"
}

func (s *CathoScraper) Scrape(ctx context.Context, page playwright.Page) ([]models.RawJob, error) {
	var allJobs []models.RawJob
	log.Printf("📋 Searching Catho (%d sectors)...", len(s.opts.Sectors))

	for _, sector := range s.opts.Sectors {
		jobs, err := s.scrapeSector(ctx, page, sector)
		allJobs = append(allJobs, jobs...)
		if err != nil {
			return allJobs, err
		}
		log.Printf("✅ Sector %s: %d jobs", sector.Name, len(jobs))
	}
	return allJobs, nil
}

// scrapeSector only returns an error when ctx is done; page failures are logged and skipped.
func (s *CathoScraper) scrapeSector(ctx context.Context, page playwright.Page, sector config.Sector) ([]models.RawJob, error) {
	var jobs []models.RawJob
	empty := 0
	log.Printf("\n🔍 Sector: %s", sector.Name)

	for n := 1; s.opts.AllPages || n <= s.opts.MaxPages; n++ {
		if err := ctx.Err(); err != nil {
			return jobs, err
		}

		listURL := PageURL(sector.URL, n)
		log.Printf("  📄 Page %d: %s", n, listURL)
		html, title, err := s.open(page, listURL)
		if err != nil {
			log.Printf("  ⚠️ Error navigating to %s: %v", listURL, err)
			if empty++; empty >= maxEmptyPages {
				break
			}
			continue
		}
		if strings.Contains(strings.ToLower(title), "404") {
			log.Println("  🏁 404, end of sector")
			break
		}
		if IsBlocked(title, html) {
			log.Println("  🛡️ Cloudflare challenge detected. Skipping sector...")
			_ = s.opts.Shots.CaptureAndLog(page, "catho-cloudflare", "🚨 Catho: Cloudflare challenge on listing")
			break
		}

		// lazy-loaded cards only show up after scrolling
		if err := browser.SmoothScroll(ctx, page); err == nil {
			_ = browser.MouseJiggle(ctx, page)
			if content, err := page.Content(); err == nil {
				html = content
			}
		}

		links, err := s.links(html, BaseURL)
		if err != nil {
			log.Printf("  ⚠️ Could not parse listing: %v", err)
			if empty++; empty >= maxEmptyPages {
				break
			}
			continue
		}
		log.Printf("  📦 %d links", len(links))
		if len(links) == 0 {
			empty++
			if empty >= maxEmptyPages {
				log.Printf("  🏁 %d empty pages in a row, end of sector", maxEmptyPages)
				break
			}
			continue
		}
		empty = 0

		for _, link := range links {
			job, ok := s.detail(ctx, page, link, sector.Name)
			if !ok {
				continue
			}
			jobs = append(jobs, job)
			if s.opts.Sink != nil {
				if err := s.opts.Sink.Upsert(ctx, job); err != nil {
					log.Printf("  ⚠️ Failed to store %s: %v", link, err)
				}
			}
			if err := browser.RandomDelay(ctx, s.opts.MinDelay, s.opts.MaxDelay); err != nil {
				return jobs, err
			}
		}
	}
	return jobs, nil
}

func (s *CathoScraper) detail(ctx context.Context, page playwright.Page, link, sector string) (models.RawJob, bool) {
	html, title, err := s.open(page, link)
	if err != nil {
		log.Printf("    ⚠️ Error opening %s: %v", link, err)
		return models.RawJob{}, false
	}
	if IsBlocked(title, html) {
		_ = s.opts.Shots.CaptureAndLog(page, "catho-cloudflare-detail", "🚨 Catho: Cloudflare challenge on job page")
		return models.RawJob{}, false
	}
	if ctx.Err() != nil {
		return models.RawJob{}, false
	}

	job, ok := ParseDetail(html, link, sector, s.now())
	if !ok {
		log.Printf("    ⚠️ No title found on %s", link)
	}
	return job, ok
}

func (s *CathoScraper) open(page playwright.Page, target string) (html, title string, err error) {
	if _, err := page.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return "", "", err
	}
	title, _ = page.Title()
	html, err = page.Content()
	if err != nil {
		return "", "", fmt.Errorf("failed to read page content: %w", err)
	}
	return html, title, nil
}
