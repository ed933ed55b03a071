package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// modelSpec is the on-disk shape of model.json. Type selects which of the
// remaining fields are meaningful.
type modelSpec struct {
	Type         string     `json:"type"`
	Intercept    float64    `json:"intercept"`
	Coefficients []float64  `json:"coefficients"`
	Trees        []treeSpec `json:"trees"`
}

// treeSpec is one decision tree in flat-array form: node i branches to
// ChildrenLeft[i] when row[Feature[i]] <= Threshold[i], else to
// ChildrenRight[i]; leaves have both children set to -1 and predict Value[i].
type treeSpec struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

func loadModel(path string, featureCount int) (regressor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var spec modelSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	switch spec.Type {
	case "linear":
		if len(spec.Coefficients) != featureCount {
			return nil, fmt.Errorf("model artifact has %d coefficients, want %d", len(spec.Coefficients), featureCount)
		}
		return &linearModel{intercept: spec.Intercept, coefficients: spec.Coefficients}, nil
	case "forest":
		if len(spec.Trees) == 0 {
			return nil, fmt.Errorf("model artifact has no trees")
		}
		for i, tree := range spec.Trees {
			if err := tree.validate(featureCount); err != nil {
				return nil, fmt.Errorf("model artifact tree %d: %w", i, err)
			}
		}
		return &forestModel{trees: spec.Trees}, nil
	default:
		return nil, fmt.Errorf("unknown model type %q", spec.Type)
	}
}

// linearModel predicts intercept + dot(coefficients, row).
type linearModel struct {
	intercept    float64
	coefficients []float64
}

func (m *linearModel) predict(row []float64) float64 {
	sum := m.intercept
	for i, c := range m.coefficients {
		sum += c * row[i]
	}
	return sum
}

// forestModel predicts the mean of its trees' predictions.
type forestModel struct {
	trees []treeSpec
}

func (m *forestModel) predict(row []float64) float64 {
	sum := 0.0
	for i := range m.trees {
		sum += m.trees[i].predictOne(row)
	}
	return sum / float64(len(m.trees))
}

func (t *treeSpec) predictOne(row []float64) float64 {
	node := 0
	for t.ChildrenLeft[node] != -1 {
		if row[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

func (t *treeSpec) validate(featureCount int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node array lengths differ")
	}
	for i := 0; i < n; i++ {
		if t.ChildrenLeft[i] == -1 {
			continue // leaf
		}
		if t.ChildrenLeft[i] < 0 || t.ChildrenLeft[i] >= n ||
			t.ChildrenRight[i] < 0 || t.ChildrenRight[i] >= n {
			return fmt.Errorf("node %d has child out of range", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= featureCount {
			return fmt.Errorf("node %d references feature %d, want < %d", i, t.Feature[i], featureCount)
		}
	}
	return nil
}
