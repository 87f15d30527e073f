package normalize

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const DefaultSector = "Outros"

// SectorMapper normalizes sector labels. Keys are compared accent- and case-insensitively;
// labels without a mapping keep their own (trimmed) spelling.
type SectorMapper struct {
	mapping map[string]string
}

func NewSectorMapper(mapping map[string]string) *SectorMapper {
	m := &SectorMapper{mapping: make(map[string]string, len(mapping))}
	for raw, normalized := range mapping {
		m.mapping[sectorKey(raw)] = strings.TrimSpace(normalized)
	}
	return m
}

// LoadSectorMapper reads a CSV with columns raw_sector,normalized_sector (header optional).
func LoadSectorMapper(path string) (*SectorMapper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sector map: %w", err)
	}
	defer f.Close()
	return ReadSectorMapper(f)
}

func ReadSectorMapper(r io.Reader) (*SectorMapper, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	mapping := map[string]string{}
	for line := 1; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse sector map line %d: %w", line, err)
		}
		if len(rec) < 2 {
			continue
		}
		if line == 1 && sectorKey(rec[0]) == "raw_sector" {
			continue
		}
		mapping[rec[0]] = rec[1]
	}
	return NewSectorMapper(mapping), nil
}

func sectorKey(s string) string {
	return collapseSpaces(fold(s))
}

// Normalize maps a raw label to its canonical sector, "Outros" when empty.
func (m *SectorMapper) Normalize(raw string) string {
	raw = collapseSpaces(raw)
	if raw == "" {
		return DefaultSector
	}
	if m != nil {
		if v, ok := m.mapping[sectorKey(raw)]; ok && v != "" {
			return v
		}
	}
	return raw
}

// Len is the number of explicit mappings.
func (m *SectorMapper) Len() int {
	if m == nil {
		return 0
	}
	return len(m.mapping)
}
