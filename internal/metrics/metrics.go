// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Logins counts login attempts by result ("ok" or "invalid").
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodplanner_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	// Signups counts signup attempts by result ("ok", "duplicate" or "invalid").
	Signups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodplanner_signups_total",
		Help: "Signup attempts by result.",
	}, []string{"result"})

	// Plans counts quantity recommendations by mode ("ratio" or "model").
	Plans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodplanner_plans_total",
		Help: "Quantity recommendations by mode.",
	}, []string{"mode"})
)
