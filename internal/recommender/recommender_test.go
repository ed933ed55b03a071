package recommender

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Mainadeveloper/food-waste-app/internal/models"
)

// stubModel is a canned-prediction Model that records the feature row it was
// asked to score.
type stubModel struct {
	columns    []string
	months     map[string]float64
	events     map[string]float64
	prediction float64
	lastRow    []float64
}

func (m *stubModel) FeatureColumns() []string { return m.columns }

func (m *stubModel) EncodeMonth(label string) (float64, bool) {
	code, ok := m.months[label]
	return code, ok
}

func (m *stubModel) EncodeEventType(label string) (float64, bool) {
	code, ok := m.events[label]
	return code, ok
}

func (m *stubModel) Predict(row []float64) (float64, error) {
	m.lastRow = row
	return m.prediction, nil
}

func newStubModel(prediction float64) *stubModel {
	return &stubModel{
		columns: []string{
			"Total Customers", "Event Type", "month", "B/F", "Lunch", "supper",
			"Food cooked", "Food Consumed",
		},
		months:     map[string]float64{"March": 2, "June": 5},
		events:     map[string]float64{"Regular": 0, "Wedding": 1},
		prediction: prediction,
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name         string
		people       int
		foods        []string
		prediction   float64
		wantErr      bool
		wantErrIs    error
		validateFunc func(t *testing.T, rec *models.Recommendation)
	}{
		{
			name:   "single food uses cap table",
			people: 10,
			foods:  []string{"Milk"},
			validateFunc: func(t *testing.T, rec *models.Recommendation) {
				// Milk cap 0.5 * 10 people = 5.0 kg
				if rec.Total != 5.0 {
					t.Errorf("Total = %v, want 5.0", rec.Total)
				}
				if rec.FromModel {
					t.Error("single-food plan should not use the model")
				}
				if len(rec.Portions) != 1 || rec.Portions[0].Food != "Milk" || rec.Portions[0].Quantity != 5.0 {
					t.Errorf("unexpected portions: %+v", rec.Portions)
				}
			},
		},
		{
			name:   "single food without cap entry falls back to default",
			people: 10,
			foods:  []string{"Sorghum"},
			validateFunc: func(t *testing.T, rec *models.Recommendation) {
				// default cap 0.9 * 10 = 9.0
				if rec.Total != 9.0 {
					t.Errorf("Total = %v, want 9.0", rec.Total)
				}
			},
		},
		{
			name:       "two foods use the model",
			people:     20,
			foods:      []string{"Meat", "Rice"},
			prediction: 15.0,
			validateFunc: func(t *testing.T, rec *models.Recommendation) {
				// 15.0 is below the cap of 20*0.9=18, so it stands.
				// Meat: 3.5/6.7*15 = 7.84, Rice: 3.2/6.7*15 = 7.16
				if rec.Total != 15.0 {
					t.Errorf("Total = %v, want 15.0", rec.Total)
				}
				if !rec.FromModel {
					t.Error("multi-food plan should use the model")
				}
				if rec.Portions[0].Quantity != 7.84 {
					t.Errorf("Meat share = %v, want 7.84", rec.Portions[0].Quantity)
				}
				if rec.Portions[1].Quantity != 7.16 {
					t.Errorf("Rice share = %v, want 7.16", rec.Portions[1].Quantity)
				}
			},
		},
		{
			name:       "prediction clamped to per-person maximum",
			people:     20,
			foods:      []string{"Meat", "Rice"},
			prediction: 100.0,
			validateFunc: func(t *testing.T, rec *models.Recommendation) {
				if rec.Total != 18.0 {
					t.Errorf("Total = %v, want 18.0 (20 * 0.9)", rec.Total)
				}
			},
		},
		{
			name:       "shares sum to total within rounding tolerance",
			people:     50,
			foods:      []string{"Meat", "Cereals", "Rice", "Eggs", "Vegetables"},
			prediction: 37.7,
			validateFunc: func(t *testing.T, rec *models.Recommendation) {
				sum := 0.0
				for _, p := range rec.Portions {
					sum += p.Quantity
				}
				tolerance := 0.01 * float64(len(rec.Portions))
				if math.Abs(sum-rec.Total) > tolerance {
					t.Errorf("shares sum to %v, total is %v (tolerance %v)", sum, rec.Total, tolerance)
				}
			},
		},
		{
			name:      "zero foods is rejected",
			people:    10,
			foods:     nil,
			wantErr:   true,
			wantErrIs: ErrNoFoodsSelected,
		},
		{
			name:    "zero people is rejected",
			people:  0,
			foods:   []string{"Milk"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := New(DefaultTables(), newStubModel(tt.prediction))
			got, err := rec.Recommend(models.PlanRequest{
				People: tt.people,
				Foods:  tt.foods,
				Month:  time.March,
			})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantErrIs != nil && !errors.Is(err, tt.wantErrIs) {
					t.Fatalf("expected %v, got %v", tt.wantErrIs, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Recommend failed: %v", err)
			}
			tt.validateFunc(t, got)
		})
	}
}

func TestFeatureRowConstruction(t *testing.T) {
	model := newStubModel(10.0)
	// The model also expects a food placeholder and a column the planner
	// never produces; both must be zero-filled.
	model.columns = append(model.columns, "Meat(kgs)", "Holiday Factor")

	rec := New(DefaultTables(), model)
	_, err := rec.Recommend(models.PlanRequest{
		People: 10,
		Foods:  []string{"Meat", "Rice"},
		Month:  time.March,
	})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	want := []float64{
		10,  // Total Customers
		0,   // Event Type: Regular
		2,   // month: March
		3,   // B/F = 10 * 0.3
		5,   // Lunch = 10 * 0.5
		2,   // supper = 10 * 0.2
		10,  // Food cooked = 10 * 1.0
		9.5, // Food Consumed = 10 * 0.95
		0,   // Meat(kgs): placeholder, always zero
		0,   // Holiday Factor: unknown to the planner, zero-filled
	}
	if len(model.lastRow) != len(want) {
		t.Fatalf("row length = %d, want %d", len(model.lastRow), len(want))
	}
	for i := range want {
		if math.Abs(model.lastRow[i]-want[i]) > 1e-9 {
			t.Errorf("row[%d] (%s) = %v, want %v", i, model.columns[i], model.lastRow[i], want[i])
		}
	}
}

func TestUnknownMonthEncodesAsZero(t *testing.T) {
	model := newStubModel(10.0)
	rec := New(DefaultTables(), model)

	// December is not in the stub's month mapping.
	_, err := rec.Recommend(models.PlanRequest{
		People: 10,
		Foods:  []string{"Meat", "Rice"},
		Month:  time.December,
	})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if model.lastRow[2] != 0 {
		t.Errorf("month code = %v, want 0 for unmapped label", model.lastRow[2])
	}
}

func TestZeroWeightBreakdown(t *testing.T) {
	tables := DefaultTables()
	tables.BaseWeights = map[string]float64{} // no weights at all

	rec := New(tables, newStubModel(12.0))
	got, err := rec.Recommend(models.PlanRequest{
		People: 10,
		Foods:  []string{"Meat", "Rice"},
		Month:  time.March,
	})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	for _, p := range got.Portions {
		if p.Quantity != 0 {
			t.Errorf("%s share = %v, want 0 with zero weight sum", p.Food, p.Quantity)
		}
	}
}
