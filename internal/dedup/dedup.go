package dedup

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SeenStore remembers which postings earlier runs already loaded.
type SeenStore interface {
	IsSeen(ctx context.Context, key string) (bool, error)
	Add(ctx context.Context, keys []string) error
}

// DefaultTTL is how long a processed posting stays in the seen cache.
const DefaultTTL = 30 * 24 * time.Hour

const cacheFileName = "seen_jobs.json"

type seenEntry struct {
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
}

// JobCache is the file-backed SeenStore: a JSON array in the cache directory,
// loaded once and rewritten after every Add that changes it.
type JobCache struct {
	mu       sync.Mutex
	filePath string
	ttl      time.Duration
	now      func() time.Time
	seen     map[string]int64
}

// NewJobCache creates or loads a job cache
func NewJobCache(cacheDir string) *JobCache {
	return newJobCache(cacheDir, DefaultTTL, time.Now)
}

func newJobCache(cacheDir string, ttl time.Duration, now func() time.Time) *JobCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &JobCache{
		filePath: filepath.Join(cacheDir, cacheFileName),
		ttl:      ttl,
		now:      now,
		seen:     make(map[string]int64),
	}
	cache.load()
	return cache
}

// IsSeen checks if a key has already been processed.
// Go maps are not safe for concurrent use, hence the mutex.
func (jc *JobCache) IsSeen(_ context.Context, key string) (bool, error) {
	jc.mu.Lock()
	defer jc.mu.Unlock()
	_, exists := jc.seen[key]
	return exists, nil
}

func (jc *JobCache) Add(_ context.Context, keys []string) error {
	jc.mu.Lock()
	defer jc.mu.Unlock()

	now := jc.now().UnixMilli()
	changed := false
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, exists := jc.seen[key]; !exists {
			jc.seen[key] = now
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return jc.save()
}

func (jc *JobCache) Len() int {
	jc.mu.Lock()
	defer jc.mu.Unlock()
	return len(jc.seen)
}

// load reads the cache from disk, dropping entries older than the TTL
func (jc *JobCache) load() {
	data, err := os.ReadFile(jc.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read %s: %v", cacheFileName, err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse %s: %v", cacheFileName, err)
		return
	}

	cutoff := jc.now().Add(-jc.ttl).UnixMilli()
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			jc.seen[e.Key] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously seen jobs (%d expired and removed)", loaded, len(entries)-loaded)
}

// save writes the current cache to disk; callers hold mu
func (jc *JobCache) save() error {
	entries := make([]seenEntry, 0, len(jc.seen))
	for key, ts := range jc.seen {
		entries = append(entries, seenEntry{Key: key, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal seen jobs: %w", err)
	}
	if err := os.WriteFile(jc.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cacheFileName, err)
	}
	log.Printf("💾 Saved %d seen jobs to cache", len(entries))
	return nil
}
