// Package model loads the trained regression artifacts used by the
// recommender: the regression model itself, its ordered feature column list,
// and the categorical encoders for month and event-type labels.
//
// Artifacts are JSON files exported by the external training pipeline (which
// is out of scope here). They are loaded once at process start, validated
// fail-fast, and immutable afterwards, so a single Artifact is safe to share
// across sessions.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	featureColumnsFile = "feature_columns.json"
	monthMappingFile   = "month_mapping.json"
	eventMappingFile   = "event_type_mapping.json"
	modelFile          = "model.json"
)

var (
	ErrBadFeatureCount = errors.New("feature row length does not match feature columns")
)

// Artifact bundles the trained model with its encoders and expected input
// layout.
type Artifact struct {
	featureColumns []string
	monthCodes     map[string]float64
	eventCodes     map[string]float64
	model          regressor
}

// regressor is the opaque prediction function behind an Artifact.
type regressor interface {
	predict(row []float64) float64
}

// Load reads all artifacts from dir. Any missing or malformed file is an
// error; callers are expected to fail fast at startup.
func Load(dir string) (*Artifact, error) {
	a := &Artifact{}

	if err := readJSON(filepath.Join(dir, featureColumnsFile), &a.featureColumns); err != nil {
		return nil, err
	}
	if len(a.featureColumns) == 0 {
		return nil, fmt.Errorf("%s: no feature columns", featureColumnsFile)
	}
	if err := readJSON(filepath.Join(dir, monthMappingFile), &a.monthCodes); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, eventMappingFile), &a.eventCodes); err != nil {
		return nil, err
	}

	model, err := loadModel(filepath.Join(dir, modelFile), len(a.featureColumns))
	if err != nil {
		return nil, err
	}
	a.model = model

	return a, nil
}

// FeatureColumns returns the ordered list of input columns the model expects.
// The returned slice must not be modified.
func (a *Artifact) FeatureColumns() []string {
	return a.featureColumns
}

// EncodeMonth maps a month label (e.g. "January") to its numeric code.
func (a *Artifact) EncodeMonth(label string) (float64, bool) {
	code, ok := a.monthCodes[label]
	return code, ok
}

// EncodeEventType maps an event-type label (e.g. "Regular") to its numeric
// code.
func (a *Artifact) EncodeEventType(label string) (float64, bool) {
	code, ok := a.eventCodes[label]
	return code, ok
}

// Predict runs the regression model on one feature row. The row must be
// ordered exactly as FeatureColumns.
func (a *Artifact) Predict(row []float64) (float64, error) {
	if len(row) != len(a.featureColumns) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrBadFeatureCount, len(row), len(a.featureColumns))
	}
	return a.model.predict(row), nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}
