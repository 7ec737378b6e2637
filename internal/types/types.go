// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the engine, storage, and handlers can all import types without
// depending on each other.
package types

// Student represents one roster record.
//
// StudentID is the identifying key: caller-supplied, unique across the
// roster, and write-once — update operations may change every other
// field but never this one.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls the field's wire name, both in the HTTP
//     API and in the persisted snapshot (the two share a format).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package at the HTTP edge. "required" means non-empty.
//
// The declaration order below is load-bearing: it is the fixed order
// in which validation reports the first missing field.
type Student struct {
	StudentID string `json:"studentId" validate:"required"`
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required"`
	Phone     string `json:"phone"     validate:"required"`
	Course    string `json:"course"    validate:"required"`
}
