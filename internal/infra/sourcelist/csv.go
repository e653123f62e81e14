package sourcelist

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"govnews/internal/domain/entity"
)

// loadCSV reads a headered CSV source list. The header must name a source
// column ("name" or the legacy "muni") and a URL column ("url" or
// "endpoint"); a "kind" column is optional. Rows missing name or URL are
// skipped rather than failing the whole file.
func loadCSV(path string) ([]entity.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source list: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	nameCol, urlCol, kindCol := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name", "muni":
			nameCol = i
		case "url", "endpoint":
			urlCol = i
		case "kind":
			kindCol = i
		}
	}
	if nameCol < 0 || urlCol < 0 {
		return nil, fmt.Errorf("CSV header must contain name and url columns: %v", header)
	}

	var sources []entity.Source
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV record: %w", err)
		}

		name := field(record, nameCol)
		endpoint := field(record, urlCol)
		if name == "" || endpoint == "" {
			continue
		}

		kind := entity.SourceKindUnknown
		if kindCol >= 0 {
			kind = normalizeKind(field(record, kindCol))
		}

		sources = append(sources, entity.Source{Name: name, Endpoint: endpoint, Kind: kind})
	}

	return sources, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
