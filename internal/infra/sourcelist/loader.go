// Package sourcelist loads the ordered list of monitored sources from a
// local file. CSV is the primary format; YAML is accepted for richer
// configurations.
package sourcelist

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"govnews/internal/domain/entity"
)

// ErrNoSources indicates the file was read but contained no usable sources.
var ErrNoSources = errors.New("source list is empty")

// Load reads the source list at path, choosing the codec by file extension.
// The returned slice preserves file order; every entry is validated.
func Load(path string) ([]entity.Source, error) {
	var (
		sources []entity.Source
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		sources, err = loadYAML(path)
	default:
		sources, err = loadCSV(path)
	}
	if err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSources, path)
	}
	for i := range sources {
		if err := sources[i].Validate(); err != nil {
			return nil, fmt.Errorf("source %d (%s): %w", i+1, sources[i].Name, err)
		}
	}
	return sources, nil
}

// normalizeKind maps an optional kind column to one of the known kinds.
// Anything unrecognized degrades to unknown and is routed by URL heuristic.
func normalizeKind(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case entity.SourceKindFeed, "rss", "atom":
		return entity.SourceKindFeed
	case entity.SourceKindPage, "html":
		return entity.SourceKindPage
	default:
		return entity.SourceKindUnknown
	}
}
