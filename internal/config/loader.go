package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Source names where a configuration came from.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// Source describes the outcome of LoadVolcano.
type Source struct {
	// Path is the file used, or SourceEmbedded/SourceBuiltin.
	Path string
	// Skipped holds one error per broken implicit config file passed over.
	Skipped []error
}

func (s Source) String() string {
	return s.Path
}

// LoadVolcano loads and validates the game configuration.
// Search order: customPath -> ~/.volcano/configs/volcano.{yaml,toml} ->
// ./configs/volcano.{yaml,toml} -> embedded default.
// A custom path that cannot be read, parsed or validated is an error. Broken
// implicit files are skipped and reported in Source.Skipped.
func LoadVolcano(customPath string) (VolcanoConfig, Source, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return VolcanoConfig{}, Source{}, err
		}
		return cfg, Source{Path: customPath}, nil
	}

	var src Source
	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := loadFile(path)
		if err != nil {
			src.Skipped = append(src.Skipped, err)
			continue
		}
		src.Path = path
		return cfg, src, nil
	}

	cfg, err := Parse(defaultVolcanoYAML, ".yaml")
	if err != nil {
		src.Skipped = append(src.Skipped, fmt.Errorf("config: embedded defaults: %w", err))
		src.Path = SourceBuiltin
		return DefaultVolcanoConfig(), src, nil
	}
	src.Path = SourceEmbedded
	return cfg, src, nil
}

// Parse decodes and validates a configuration. The format is picked from
// ext (".toml" selects TOML, anything else YAML). Fields missing from data
// keep their built-in defaults.
func Parse(data []byte, ext string) (VolcanoConfig, error) {
	cfg := DefaultVolcanoConfig()

	switch strings.ToLower(ext) {
	case ".toml":
		// TOML decodes arrays into the existing backing array, which would
		// merge user bands into the defaults element by element.
		defaults := cfg.Endings.Bands
		cfg.Endings.Bands = nil
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return VolcanoConfig{}, fmt.Errorf("config: cannot parse toml: %w", err)
		}
		if !md.IsDefined("endings", "bands") {
			cfg.Endings.Bands = defaults
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return VolcanoConfig{}, fmt.Errorf("config: unknown toml key %q", undecoded[0].String())
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return VolcanoConfig{}, fmt.Errorf("config: cannot parse yaml: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return VolcanoConfig{}, err
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg VolcanoConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: cannot encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: cannot encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func loadFile(path string) (VolcanoConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return VolcanoConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return VolcanoConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".volcano", "configs")
		paths = append(paths,
			filepath.Join(dir, "volcano.yaml"),
			filepath.Join(dir, "volcano.toml"),
		)
	}
	return append(paths,
		filepath.Join("configs", "volcano.yaml"),
		filepath.Join("configs", "volcano.toml"),
	)
}
