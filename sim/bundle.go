package sim

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

// LoadExperimentConfig reads an experiment configuration file. The format is
// chosen by extension: .toml is decoded as TOML, anything else as YAML.
// Fields absent from the file keep their DefaultExperimentConfig values.
// Unknown keys are rejected in both formats so that typos fail loudly.
// The returned config is normalized but not validated.
func LoadExperimentConfig(path string) (*ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment config: %w", err)
	}
	cfg := DefaultExperimentConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(data, &cfg)
	default:
		err = decodeYAML(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing experiment config %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

func decodeYAML(data []byte, cfg *ExperimentConfig) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		// An empty file is a valid "all defaults" config.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func decodeTOML(data []byte, cfg *ExperimentConfig) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}
