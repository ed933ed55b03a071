// Package models defines the core domain types for the food planner.
//
// # Models
//
//   - User: a staff account stored in the credential store
//   - LoginEvent: one append-only audit row per successful login
//   - PlanRequest: the input to a quantity recommendation
//   - Recommendation: the computed total and per-food breakdown
//
// # Design principles
//
//  1. Users are keyed by username (the credential store's unique key);
//     no surrogate IDs are needed for a single-table account store.
//  2. Recommendation inputs and outputs are plain values so the
//     recommender stays a pure function.
//  3. The persisted timestamp format for audit rows is part of the store
//     contract and lives next to LoginEvent.
package models
