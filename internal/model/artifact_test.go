package model

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeArtifacts(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func linearArtifacts() map[string]string {
	return map[string]string{
		"feature_columns.json":    `["Total Customers", "month", "Event Type"]`,
		"month_mapping.json":      `{"January": 0, "February": 1, "March": 2}`,
		"event_type_mapping.json": `{"Regular": 0, "Wedding": 1}`,
		"model.json":              `{"type": "linear", "intercept": 2.0, "coefficients": [0.5, 1.0, 0.0]}`,
	}
}

func TestLoadLinearModel(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, linearArtifacts())

	artifact, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cols := artifact.FeatureColumns()
	if len(cols) != 3 || cols[0] != "Total Customers" {
		t.Errorf("unexpected feature columns: %v", cols)
	}

	if code, ok := artifact.EncodeMonth("March"); !ok || code != 2 {
		t.Errorf("EncodeMonth(March) = %v, %v; want 2, true", code, ok)
	}
	if _, ok := artifact.EncodeMonth("Brumaire"); ok {
		t.Error("expected unknown month label to miss")
	}
	if code, ok := artifact.EncodeEventType("Regular"); !ok || code != 0 {
		t.Errorf("EncodeEventType(Regular) = %v, %v; want 0, true", code, ok)
	}

	// 2.0 + 0.5*10 + 1.0*2 + 0.0*0 = 9.0
	got, err := artifact.Predict([]float64{10, 2, 0})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if math.Abs(got-9.0) > 1e-9 {
		t.Errorf("Predict = %v, want 9.0", got)
	}
}

func TestPredictRejectsWrongRowLength(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, linearArtifacts())

	artifact, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := artifact.Predict([]float64{1, 2}); err == nil {
		t.Error("expected error for short feature row")
	}
}

func TestLoadForestModel(t *testing.T) {
	dir := t.TempDir()
	files := linearArtifacts()
	// Single tree: row[0] <= 15 -> 10.0, else 20.0.
	files["model.json"] = `{
		"type": "forest",
		"trees": [{
			"children_left":  [1, -1, -1],
			"children_right": [2, -1, -1],
			"feature":        [0, -2, -2],
			"threshold":      [15.0, 0, 0],
			"value":          [0, 10.0, 20.0]
		}]
	}`
	writeArtifacts(t, dir, files)

	artifact, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	low, err := artifact.Predict([]float64{10, 0, 0})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if low != 10.0 {
		t.Errorf("Predict(10 customers) = %v, want 10.0", low)
	}

	high, err := artifact.Predict([]float64{30, 0, 0})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if high != 20.0 {
		t.Errorf("Predict(30 customers) = %v, want 20.0", high)
	}
}

func TestLoadFailsFast(t *testing.T) {
	t.Run("missing artifact file", func(t *testing.T) {
		dir := t.TempDir()
		files := linearArtifacts()
		delete(files, "model.json")
		writeArtifacts(t, dir, files)

		if _, err := Load(dir); err == nil {
			t.Error("expected error for missing model.json")
		}
	})

	t.Run("coefficient count mismatch", func(t *testing.T) {
		dir := t.TempDir()
		files := linearArtifacts()
		files["model.json"] = `{"type": "linear", "intercept": 0, "coefficients": [1.0]}`
		writeArtifacts(t, dir, files)

		if _, err := Load(dir); err == nil {
			t.Error("expected error for coefficient mismatch")
		}
	})

	t.Run("unknown model type", func(t *testing.T) {
		dir := t.TempDir()
		files := linearArtifacts()
		files["model.json"] = `{"type": "svm"}`
		writeArtifacts(t, dir, files)

		if _, err := Load(dir); err == nil {
			t.Error("expected error for unknown model type")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		dir := t.TempDir()
		files := linearArtifacts()
		files["month_mapping.json"] = `{broken`
		writeArtifacts(t, dir, files)

		if _, err := Load(dir); err == nil {
			t.Error("expected error for malformed mapping")
		}
	})
}
