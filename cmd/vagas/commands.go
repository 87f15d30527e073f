package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"go-vagas-pipeline/internal/database"
	"go-vagas-pipeline/internal/dedup"
	"go-vagas-pipeline/internal/fileio"
	"go-vagas-pipeline/internal/localstore"
	"go-vagas-pipeline/internal/models"
	"go-vagas-pipeline/internal/pipeline"
	"go-vagas-pipeline/internal/reporter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// readRaws loads raw postings from a .csv or .jsonl file, or from the local sqlite store when path is empty.
func readRaws(ctx context.Context, path string) ([]models.RawJob, error) {
	if path == "" {
		store, err := localstore.Open(cfg.LocalDBPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.All(ctx)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return fileio.ReadRawCSV(path)
	case ".jsonl":
		return fileio.ReadRawJSONL(path)
	}
	return nil, fmt.Errorf("unsupported input %s: want .csv or .jsonl", path)
}

// writeJobs writes .json (with metadata) or .jsonl depending on the extension.
func writeJobs(path string, jobs []models.Job, runID string) error {
	if path == "" {
		return nil
	}
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = fileio.WriteJobsJSON(path, jobs, fileio.Metadata{RunID: runID, Source: "catho"})
	} else {
		err = fileio.WriteJobsJSONL(path, jobs)
	}
	if err != nil {
		return err
	}
	log.Printf("📁 %d jobs saved to %s", len(jobs), path)
	return nil
}

func connectDB(ctx context.Context) (*database.Repository, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}

func newNormalizeCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize raw postings (.csv/.jsonl or the local store) into structured jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raws, err := readRaws(cmd.Context(), in)
			if err != nil {
				return err
			}
			p, err := pipeline.New(cfg, nil)
			if err != nil {
				return err
			}
			jobs, skipped := pipeline.NormalizeAll(p.Normalizer, raws)
			log.Printf("✅ Normalized %d/%d (%d skipped)", len(jobs), len(raws), len(skipped))
			return writeJobs(out, jobs, "")
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "raw input (.csv or .jsonl); empty reads the local store")
	cmd.Flags().StringVarP(&out, "out", "o", "vagas_normalizadas.jsonl", "output (.jsonl or .json)")
	return cmd
}

func newDedupeCmd() *cobra.Command {
	var in, out string
	var threshold float64
	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Remove near-duplicate jobs from a normalized .jsonl file",
		RunE: func(_ *cobra.Command, _ []string) error {
			jobs, err := fileio.ReadJobsJSONL(in)
			if err != nil {
				return err
			}
			if threshold == 0 {
				threshold = cfg.DedupThreshold
			}
			unique, dups := dedup.Remove(jobs, threshold)
			log.Printf("🔍 Deduplication: %d -> %d (%d duplicates)", len(jobs), len(unique), dups)
			return writeJobs(out, unique, "")
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "vagas_normalizadas.jsonl", "normalized input (.jsonl)")
	cmd.Flags().StringVarP(&out, "out", "o", "vagas_unicas.jsonl", "output (.jsonl or .json)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "similarity threshold (default from config)")
	return cmd
}

func newUploadCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upsert normalized jobs into Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			jobs, err := fileio.ReadJobsJSONL(in)
			if err != nil {
				return err
			}
			repo, err := connectDB(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			runID := uuid.NewString()
			uploaded, err := pipeline.NewUploader(repo, cfg.BatchSize, cfg.UploadRate).Upload(ctx, jobs, runID)
			log.Printf("📤 Run %s: uploaded %d/%d", runID, len(uploaded), len(jobs))
			return err
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "vagas_unicas.jsonl", "normalized input (.jsonl)")
	return cmd
}

func newRunCmd() *cobra.Command {
	var in, out string
	var dryRun, notifyJobs bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "normalize -> filter -> dedupe -> upload in one pass",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			raws, err := readRaws(ctx, in)
			if err != nil {
				return err
			}
			return runPipeline(ctx, raws, out, dryRun, notifyJobs)
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "raw input (.csv or .jsonl); empty reads the local store")
	cmd.Flags().StringVarP(&out, "out", "o", "", "also write the fresh jobs here (.jsonl or .json)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "skip the database and the seen cache")
	cmd.Flags().BoolVar(&notifyJobs, "notify-jobs", false, "send each fresh job to the reporter")
	return cmd
}

func runPipeline(ctx context.Context, raws []models.RawJob, out string, dryRun, notifyJobs bool) error {
	rep, err := reporter.FromConfig(cfg)
	if err != nil {
		return err
	}

	var store pipeline.Store
	if !dryRun {
		repo, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()
		store = repo
	}

	p, err := pipeline.New(cfg, store)
	if err != nil {
		return err
	}
	if !dryRun {
		seen, closeSeen, err := dedup.OpenSeenStore(ctx, cfg.RedisURL, cfg.CachePath)
		if err != nil {
			return err
		}
		defer closeSeen()
		p.Seen = seen
	}

	res, runErr := p.Run(ctx, raws)
	if runErr != nil {
		if err := rep.SendError(runErr); err != nil {
			log.Printf("⚠️ Failed to report error: %v", err)
		}
	}
	if res == nil {
		return runErr
	}

	fmt.Print(res.Stats.String())
	if err := rep.SendRunSummary(res.Stats); err != nil {
		log.Printf("⚠️ Failed to send run summary: %v", err)
	}
	if notifyJobs {
		if _, err := reporter.SendJobs(ctx, rep, res.Jobs, 20, time.Second); err != nil {
			log.Printf("⚠️ Job notifications interrupted: %v", err)
		}
	}
	if err := writeJobs(out, res.Jobs, res.Stats.RunID); err != nil {
		return err
	}
	return runErr
}

func newStatsCmd() *cobra.Command {
	var in string
	var remote bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Coverage statistics of a normalized file, or of the loaded table with --remote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if remote {
				return remoteStats(cmd.Context())
			}
			jobs, err := fileio.ReadJobsJSONL(in)
			if err != nil {
				return err
			}
			fmt.Print(pipeline.Stats{Input: len(jobs), Normalized: len(jobs), Coverage: pipeline.Summarize(jobs)}.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "vagas_normalizadas.jsonl", "normalized input (.jsonl)")
	cmd.Flags().BoolVar(&remote, "remote", false, "query Postgres instead of a file")
	return cmd
}

func remoteStats(ctx context.Context) error {
	repo, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	s, err := repo.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("total %d, with salary %d\n", s.Total, s.WithSalary)
	if s.AvgSalaryMin != nil {
		fmt.Printf("avg salary_min %.2f\n", *s.AvgSalaryMin)
	}
	for _, group := range []struct {
		name  string
		items []models.CountItem
	}{{"sector", s.BySector}, {"modality", s.ByModality}, {"state", s.ByState}, {"seniority", s.BySeniority}} {
		fmt.Printf("%s:\n", group.name)
		for _, it := range group.items {
			fmt.Printf("  %s: %d\n", it.Name, it.Count)
		}
	}
	return nil
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the local raw-posting store to CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := localstore.Open(cfg.LocalDBPath)
			if err != nil {
				return err
			}
			defer store.Close()
			n, err := store.ExportCSV(cmd.Context(), out)
			if err != nil {
				return err
			}
			log.Printf("📁 %d postings exported to %s", n, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "vagas_catho.csv", "CSV output")
	return cmd
}

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the Postgres (and redis, when configured) connections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			repo, err := connectDB(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()
			n, err := repo.CountJobs(ctx, models.JobFilter{})
			if err != nil {
				return err
			}
			log.Printf("✅ Connected to Postgres, %d vagas loaded", n)

			if cfg.RedisURL != "" {
				rc, err := dedup.ConnectRedis(ctx, cfg.RedisURL, dedup.DefaultTTL)
				if err != nil {
					return err
				}
				defer rc.Close()
				log.Println("✅ Connected to redis")
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration (secrets redacted)",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Printf("database: %s\n", redact(cfg.DatabaseURL))
			fmt.Printf("redis: %s\n", redact(cfg.RedisURL))
			fmt.Printf("telegram: %v\n", cfg.TelegramEnabled())
			fmt.Printf("sectors: %d, max pages: %d, headless: %v\n", len(cfg.Sectors), cfg.MaxPages, cfg.Headless)
			fmt.Printf("include: %v, exclude: %v, min confidence: %.2f, max age: %d days\n",
				cfg.Include, cfg.Exclude, cfg.MinConfidence, cfg.MaxAgeDays)
			fmt.Printf("dedup threshold: %.2f, batch size: %d, upload rate: %.1f/s\n",
				cfg.DedupThreshold, cfg.BatchSize, cfg.UploadRate)
			fmt.Printf("cache: %s, cookies: %s, local db: %s\n", cfg.CachePath, cfg.CookiesPath, cfg.LocalDBPath)
			return nil
		},
	}
}

// redact keeps the scheme and host of a connection URL.
func redact(u string) string {
	if u == "" {
		return "(not set)"
	}
	scheme, rest, ok := strings.Cut(u, "://")
	if !ok {
		return "***"
	}
	if _, host, ok := strings.Cut(rest, "@"); ok {
		rest = host
	}
	if host, _, ok := strings.Cut(rest, "/"); ok {
		rest = host
	}
	return scheme + "://***@" + rest
}
