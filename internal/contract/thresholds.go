package contract

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/climb-tre/claspar/schema"
	"github.com/spf13/viper"
)

//go:embed default_thresholds.yaml
var defaultThresholdsYAML []byte

// ThresholdConfig holds the per-classifier, per-field filtering bounds.
// It is validated once at load time and read-only afterwards, so it is
// safe for concurrent use by the classifier pipelines.
type ThresholdConfig struct {
	bounds map[schema.Classifier]map[string]schema.Bounds
}

// LoadThresholdConfig parses a threshold YAML file into a ThresholdConfig.
// An empty path loads the embedded default thresholds. The structure is
// {classifier: {field: {min?, max?}}}; unknown classifiers, non-numeric
// bounds and min > max all fail with a ConfigError before any record
// processing begins.
func LoadThresholdConfig(path string) (*ThresholdConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path == "" {
		if err := v.ReadConfig(bytes.NewReader(defaultThresholdsYAML)); err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("reading embedded defaults: %v", err)}
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("reading %s: %v", path, err)}
		}
	}

	// Decode into the raw shape first. Non-numeric bounds fail here.
	raw := make(map[string]map[string]schema.Bounds)
	if err := v.Unmarshal(&raw); err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("bounds must be numeric: %v", err)}
	}

	bounds := make(map[schema.Classifier]map[string]schema.Bounds, len(raw))
	for name, fields := range raw {
		classifier := schema.Classifier(name)
		if _, ok := schema.ValidClassifiers[classifier]; !ok {
			return nil, &ConfigError{Classifier: name, Reason: "unknown classifier"}
		}
		entry := make(map[string]schema.Bounds, len(fields))
		for field, b := range fields {
			if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
				return nil, &ConfigError{
					Classifier: name,
					Field:      field,
					Reason:     fmt.Sprintf("min %v exceeds max %v", *b.Min, *b.Max),
				}
			}
			entry[field] = b
		}
		bounds[classifier] = entry
	}

	return &ThresholdConfig{bounds: bounds}, nil
}

// LookupBounds returns the bounds for a (classifier, field) pair. Fields
// with no configured threshold are unbounded and always pass.
func (tc *ThresholdConfig) LookupBounds(classifier schema.Classifier, field string) (schema.Bounds, bool) {
	fields, ok := tc.bounds[classifier]
	if !ok {
		return schema.Bounds{}, false
	}
	b, ok := fields[field]
	return b, ok
}

// ClassifierBounds returns a copy of the bounds map for one classifier,
// keyed by field name. Used by the analysis-fields projection and the
// thresholds command.
func (tc *ThresholdConfig) ClassifierBounds(classifier schema.Classifier) map[string]schema.Bounds {
	fields := tc.bounds[classifier]
	out := make(map[string]schema.Bounds, len(fields))
	for field, b := range fields {
		out[field] = b
	}
	return out
}
