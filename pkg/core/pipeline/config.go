package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"clinic_analytics/pkg/core/record"
)

// LLMConfig selects the models behind the narrative layer.
type LLMConfig struct {
	// InsightModel handles the heavier structured analysis calls.
	InsightModel string `yaml:"insight_model"`
	// DescriptionModel handles the small ICD lookup calls.
	DescriptionModel string `yaml:"description_model"`
	MaxAttempts      int    `yaml:"max_attempts"`
}

// Config is the file-backed configuration for the analytics service.
type Config struct {
	LLM LLMConfig `yaml:"llm"`
	// Markers override the built-in non-numeric pain score markers, so sites
	// with different charting conventions can extend them without a rebuild.
	Markers *record.ScoreMarkers `yaml:"score_markers"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			InsightModel:     "gemini-3-pro-preview",
			DescriptionModel: "gemini-3-flash-preview",
			MaxAttempts:      3,
		},
	}
}

// LoadConfig reads a YAML config file, filling unset fields from defaults. A
// missing file is not an error; defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	defaults := DefaultConfig()
	if cfg.LLM.InsightModel == "" {
		cfg.LLM.InsightModel = defaults.LLM.InsightModel
	}
	if cfg.LLM.DescriptionModel == "" {
		cfg.LLM.DescriptionModel = defaults.LLM.DescriptionModel
	}
	if cfg.LLM.MaxAttempts <= 0 {
		cfg.LLM.MaxAttempts = defaults.LLM.MaxAttempts
	}
	return cfg, nil
}

// ScoreMarkers resolves the effective marker set.
func (c Config) ScoreMarkers() record.ScoreMarkers {
	if c.Markers != nil {
		return *c.Markers
	}
	return record.DefaultScoreMarkers()
}
