package models

import "time"

// PlanRequest is the input to a quantity recommendation. It is built per
// prediction action and never persisted.
type PlanRequest struct {
	// People is the headcount to cook for. Must be at least 1.
	People int

	// Foods is the set of selected food-type labels, drawn from the
	// planner's fixed vocabulary.
	Foods []string

	// Month is the calendar month the plan is for, normally derived from
	// the current date.
	Month time.Month
}

// Portion is one row of the recommendation breakdown.
type Portion struct {
	Food     string
	Quantity float64 // kilograms, rounded to 2 decimals
}

// Recommendation is the result of a quantity computation.
type Recommendation struct {
	// Total is the recommended total quantity to cook, in kilograms.
	Total float64

	// Portions is the per-food breakdown. Portion quantities sum to
	// Total within rounding tolerance.
	Portions []Portion

	// FromModel reports whether the regression model produced the total
	// (false means the fixed single-food ratio table was used).
	FromModel bool
}
