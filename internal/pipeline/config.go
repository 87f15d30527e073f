package pipeline

import (
	"fmt"
	"log"

	"go-vagas-pipeline/internal/config"
	"go-vagas-pipeline/internal/filter"
	"go-vagas-pipeline/internal/normalize"
)

// New builds a pipeline from configuration. store may be nil for a dry run;
// the seen cache is left to the caller.
func New(cfg *config.Config, store Store) (*Pipeline, error) {
	opts := []normalize.Option{normalize.WithSkillTaxonomy(cfg.SkillTaxonomy)}
	if cfg.SectorMapPath != "" {
		mapper, err := normalize.LoadSectorMapper(cfg.SectorMapPath)
		if err != nil {
			return nil, err
		}
		log.Printf("📋 Loaded %d sector mappings", mapper.Len())
		opts = append(opts, normalize.WithSectorMapper(mapper))
	}

	matcher, err := filter.NewMatcher(filter.Rules{
		Include:       cfg.Include,
		Exclude:       cfg.Exclude,
		MinConfidence: cfg.MinConfidence,
		MaxAge:        cfg.MaxAge(),
	})
	if err != nil {
		return nil, fmt.Errorf("invalid filter rules: %w", err)
	}

	p := &Pipeline{
		Normalizer: normalize.New(opts...),
		Matcher:    matcher,
		Threshold:  cfg.DedupThreshold,
	}
	if store != nil {
		p.Uploader = NewUploader(store, cfg.BatchSize, cfg.UploadRate)
	}
	return p, nil
}
