package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// FeedSource is one RSS/Atom feed to poll for Tesla coverage.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// SourcesConfig is the on-disk list of curated news feeds, kept out of the
// environment because it changes more often than credentials do.
type SourcesConfig struct {
	Feeds []FeedSource `yaml:"feeds"`
}

// LoadSources parses a sources.yaml file. A missing file is not an error;
// the RSS collector simply has nothing to poll.
func LoadSources(path string) (*SourcesConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &SourcesConfig{}, nil
		}
		return nil, errors.Wrap(err, "failed to read sources config")
	}

	var cfg SourcesConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrapf(err, "malformed sources config %s", path)
	}
	return &cfg, nil
}
