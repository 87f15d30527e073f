package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go-vagas-pipeline/internal/browser"
	"go-vagas-pipeline/internal/config"
	"go-vagas-pipeline/internal/database"
	"go-vagas-pipeline/internal/dedup"
	"go-vagas-pipeline/internal/localstore"
	"go-vagas-pipeline/internal/pipeline"
	"go-vagas-pipeline/internal/reporter"
	"go-vagas-pipeline/internal/scraper"
	"go-vagas-pipeline/internal/scraper/catho"

	"github.com/playwright-community/playwright-go"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config.yaml")
	sectors := flag.String("sectors", "", "comma-separated sector names (default: all configured)")
	pages := flag.Int("pages", 0, "listing pages per sector (default from config)")
	allPages := flag.Bool("all", false, "walk every listing page until three come back empty")
	csvOut := flag.String("csv", "", "export the local store to this CSV after scraping")
	scrapeOnly := flag.Bool("scrape-only", false, "only scrape into the local store, skip the pipeline")
	dryRun := flag.Bool("dry-run", false, "run the pipeline without uploading")
	timeout := flag.Duration("timeout", 2*time.Hour, "overall timeout")
	flag.Parse()

	//load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if *pages > 0 {
		cfg.MaxPages = *pages
	}
	var names []string
	if *sectors != "" {
		for _, s := range strings.Split(*sectors, ",") {
			names = append(names, strings.TrimSpace(s))
		}
	}
	selected, err := cfg.SelectSectors(names)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Printf("🔧 Config loaded. %d sectors, %d pages each", len(selected), cfg.MaxPages)

	rep, err := reporter.FromConfig(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to init reporter: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("🚀 Starting Catho scraper...")

	store, err := localstore.Open(cfg.LocalDBPath)
	if err != nil {
		log.Fatalf("❌ Failed to open local store: %v", err)
	}
	defer store.Close()

	//init playwright manager
	pwManager, err := browser.NewPlaywright(ctx, cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer pwManager.Close()

	var cookies []playwright.OptionalCookie
	cookieFile := filepath.Join(cfg.CookiesPath, "cookies-catho.json")
	if loaded, err := browser.LoadCookies(cookieFile); err != nil {
		log.Printf("⚠️ Could not load cookies from %s: %v. Continuing.", cookieFile, err)
	} else {
		log.Printf("🍪 Loaded %d cookies", len(loaded))
		cookies = loaded
	}

	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	scrapers := []scraper.Scraper{
		catho.NewCathoScraper(catho.Options{
			Sectors:  selected,
			MaxPages: cfg.MaxPages,
			AllPages: *allPages || cfg.AllPages,
			Sink:     store,
		}),
	}

	total := 0
	for _, s := range scrapers {
		log.Printf("\n▶️ Starting scraper: %s", s.Name())
		jobs, err := s.Scrape(ctx, page)
		total += len(jobs)
		if err != nil {
			log.Printf("❌ Scraper %s stopped: %v", s.Name(), err)
			_ = rep.SendError(err)
			continue
		}
		log.Printf("✅ Scraper %s finished. Found %d jobs.", s.Name(), len(jobs))
	}
	log.Printf("\n📦 Total postings collected: %d", total)

	if *csvOut != "" {
		n, err := store.ExportCSV(context.Background(), *csvOut)
		if err != nil {
			log.Printf("⚠️ CSV export failed: %v", err)
		} else {
			log.Printf("📁 %d postings exported to %s", n, *csvOut)
		}
	}

	if *scrapeOnly || ctx.Err() != nil {
		log.Println("🏁 Execution finished.")
		return
	}

	//run the pipeline over everything in the local store
	raws, err := store.All(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to read local store: %v", err)
	}

	var target pipeline.Store
	if !*dryRun && cfg.DatabaseURL != "" {
		repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		defer repo.Close()
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("❌ %v", err)
		}
		target = repo
	} else {
		log.Println("ℹ️ No upload this run (dry run or DATABASE_URL unset)")
	}

	p, err := pipeline.New(cfg, target)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if target != nil {
		seen, closeSeen, err := dedup.OpenSeenStore(ctx, cfg.RedisURL, cfg.CachePath)
		if err != nil {
			log.Fatalf("❌ Failed to open seen cache: %v", err)
		}
		defer closeSeen()
		p.Seen = seen
	}

	res, err := p.Run(ctx, raws)
	if err != nil {
		log.Printf("❌ Pipeline finished with errors: %v", err)
		_ = rep.SendError(err)
	}
	log.Printf("📊 %s", res.Stats.String())
	if err := rep.SendRunSummary(res.Stats); err != nil {
		log.Printf("⚠️ Failed to send run summary: %v", err)
	}

	log.Println("🏁 Execution finished.")
}
