package sourcelist

import (
	"fmt"
	"os"

	"govnews/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

// yamlFile mirrors the YAML source list layout:
//
//	sources:
//	  - name: 北区
//	    url: https://example.jp/rss.xml
//	    kind: feed
type yamlFile struct {
	Sources []yamlSource `yaml:"sources"`
}

type yamlSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Kind string `yaml:"kind"`
}

func loadYAML(path string) ([]entity.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open source list: %w", err)
	}

	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse YAML source list: %w", err)
	}

	var sources []entity.Source
	for _, s := range file.Sources {
		if s.Name == "" || s.URL == "" {
			continue
		}
		sources = append(sources, entity.Source{
			Name:     s.Name,
			Endpoint: s.URL,
			Kind:     normalizeKind(s.Kind),
		})
	}
	return sources, nil
}
