// Package recommender computes recommended food quantities from a headcount,
// a set of selected food types, and the calendar month.
//
// Two modes exist: exactly one selected food uses the fixed per-food ration
// cap table; two or more go through the trained regression model, with the
// prediction clamped to the per-person maximum. Both are pure functions of
// their inputs plus the immutable model artifact.
package recommender

import (
	"errors"
	"fmt"
	"math"

	"github.com/Mainadeveloper/food-waste-app/internal/models"
)

var (
	// ErrNoFoodsSelected is returned when a plan selects no food types.
	// Callers warn the user and render no breakdown table.
	ErrNoFoodsSelected = errors.New("select at least one food type")
)

// Model is the trained regression artifact the recommender consults in
// multi-food mode. Satisfied by *model.Artifact.
type Model interface {
	// FeatureColumns returns the ordered input columns the model expects.
	FeatureColumns() []string
	// EncodeMonth maps a month label to its categorical code.
	EncodeMonth(label string) (float64, bool)
	// EncodeEventType maps an event-type label to its categorical code.
	EncodeEventType(label string) (float64, bool)
	// Predict runs the model on one feature row ordered per FeatureColumns.
	Predict(row []float64) (float64, error)
}

// Tables holds the static ratio configuration: the food vocabulary, the
// single-food ration caps, and the base weights used both as model feature
// names and as proportional-allocation weights for the breakdown.
type Tables struct {
	Vocabulary  []string
	Caps        map[string]float64
	BaseWeights map[string]float64

	// DefaultCap applies in single-food mode to foods without a Caps entry.
	DefaultCap float64
	// MaxPerPerson bounds the model prediction: total <= people * MaxPerPerson.
	MaxPerPerson float64
}

// Fractions of the headcount assumed per meal sitting, and the assumed
// cooked/consumed figures per person, as the model was trained on.
const (
	breakfastShare = 0.3
	lunchShare     = 0.5
	supperShare    = 0.2
	cookedPerHead  = 1.0
	eatenPerHead   = 0.95

	eventTypeRegular = "Regular"
)

// DefaultTables returns the planner's standard ratio configuration.
func DefaultTables() Tables {
	return Tables{
		Vocabulary: []string{
			"Meat", "Cereals", "Rice", "Maize/F", "Wheat/F",
			"Eggs", "Vegetables", "Milk", "Fruits",
		},
		Caps: map[string]float64{
			"Eggs":       0.3,
			"Milk":       0.5,
			"Fruits":     0.5,
			"Cereals":    0.4,
			"Vegetables": 0.9,
			"Wheat/F":    0.5,
			"Maize/F":    0.5,
			"Meat":       0.5,
			"Rice":       0.5,
		},
		BaseWeights: map[string]float64{
			"Meat":       3.5,
			"Cereals":    3.0,
			"Rice":       3.2,
			"Maize/F":    4.145,
			"Wheat/F":    4.145,
			"Eggs":       2.5,
			"Vegetables": 2.86,
			"Milk":       1.5,
			"Fruits":     2.3,
		},
		DefaultCap:   0.9,
		MaxPerPerson: 0.9,
	}
}

// Recommender computes quantity recommendations. It has no internal state.
type Recommender struct {
	tables Tables
	model  Model
}

// New creates a Recommender over the given tables and trained model.
func New(tables Tables, model Model) *Recommender {
	return &Recommender{tables: tables, model: model}
}

// Recommend computes the total quantity to cook and its per-food breakdown.
func (r *Recommender) Recommend(req models.PlanRequest) (*models.Recommendation, error) {
	if req.People < 1 {
		return nil, fmt.Errorf("people must be at least 1, got %d", req.People)
	}

	switch len(req.Foods) {
	case 0:
		return nil, ErrNoFoodsSelected
	case 1:
		return r.recommendSingle(req), nil
	default:
		return r.recommendWithModel(req)
	}
}

// recommendSingle handles the one-food case with the fixed ration cap table.
func (r *Recommender) recommendSingle(req models.PlanRequest) *models.Recommendation {
	food := req.Foods[0]
	limit, ok := r.tables.Caps[food]
	if !ok {
		limit = r.tables.DefaultCap
	}
	total := round2(float64(req.People) * limit)
	return &models.Recommendation{
		Total:     total,
		Portions:  []models.Portion{{Food: food, Quantity: total}},
		FromModel: false,
	}
}

// recommendWithModel handles two or more foods via the regression model.
func (r *Recommender) recommendWithModel(req models.PlanRequest) (*models.Recommendation, error) {
	prediction, err := r.model.Predict(r.featureRow(req))
	if err != nil {
		return nil, fmt.Errorf("failed to run model: %w", err)
	}

	total := math.Min(prediction, float64(req.People)*r.tables.MaxPerPerson)
	total = round2(total)

	return &models.Recommendation{
		Total:     total,
		Portions:  r.breakdown(req.Foods, total),
		FromModel: true,
	}, nil
}

// featureRow builds the model input row. Columns the model expects but the
// record lacks are zero-filled; record fields the model does not expect are
// dropped. Food columns are placeholders and always zero.
func (r *Recommender) featureRow(req models.PlanRequest) []float64 {
	people := float64(req.People)

	monthCode, _ := r.model.EncodeMonth(req.Month.String()) // unknown label encodes as 0
	eventCode, _ := r.model.EncodeEventType(eventTypeRegular)

	record := map[string]float64{
		"Total Customers": people,
		"Event Type":      eventCode,
		"month":           monthCode,
		"B/F":             people * breakfastShare,
		"Lunch":           people * lunchShare,
		"supper":          people * supperShare,
		"Food cooked":     people * cookedPerHead,
		"Food Consumed":   people * eatenPerHead,
	}
	for _, food := range r.tables.Vocabulary {
		record[food+"(kgs)"] = 0
	}

	columns := r.model.FeatureColumns()
	row := make([]float64, len(columns))
	for i, col := range columns {
		row[i] = record[col] // missing columns default to 0
	}
	return row
}

// breakdown allocates the total across the selected foods in proportion to
// their base weights. If the combined weight is zero every share is zero.
func (r *Recommender) breakdown(foods []string, total float64) []models.Portion {
	weightSum := 0.0
	for _, food := range foods {
		weightSum += r.tables.BaseWeights[food]
	}

	portions := make([]models.Portion, len(foods))
	for i, food := range foods {
		quantity := 0.0
		if weightSum > 0 {
			quantity = round2(r.tables.BaseWeights[food] / weightSum * total)
		}
		portions[i] = models.Portion{Food: food, Quantity: quantity}
	}
	return portions
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
