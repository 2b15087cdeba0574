// Package models defines the core data structures for flavour records
// and typed application errors.
package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Flavour represents a single coffee-flavour inventory record.
type Flavour struct {
	// ID is the unique identifier for the record, assigned on creation.
	ID string `json:"id"`
	// Barcode is the scanned or hand-entered product barcode.
	Barcode string `json:"barcode"`
	// Name is the display name of the flavour. Required, non-empty after trimming.
	Name string `json:"name"`
	// PricePerBox is the purchase price of a full box.
	PricePerBox float64 `json:"pricePerBox"`
	// PricePerPod is derived from PricePerBox / PodsPerBox, rounded to 2 decimals.
	PricePerPod float64 `json:"pricePerPod"`
	// PodsPerBox is the number of pods contained in one box.
	PodsPerBox float64 `json:"podsPerBox"`
	// PhotoName is the file name of the attached photo, if any.
	PhotoName string `json:"photoName,omitempty"`
	// PhotoData is the embedded base64 image payload, if any.
	PhotoData string `json:"photoData,omitempty"`
}

// FlavourPatch carries a partial update for a Flavour. Nil fields are
// left unchanged by the merge; the record id is never part of a patch.
type FlavourPatch struct {
	Barcode     *string
	Name        *string
	PricePerBox *float64
	PodsPerBox  *float64
	PhotoName   *string
	PhotoData   *string
}

// RecalcPricePerPod recomputes the derived per-pod price.
// A PodsPerBox of zero yields a per-pod price of zero.
func (f *Flavour) RecalcPricePerPod() {
	if f.PodsPerBox == 0 {
		f.PricePerPod = 0
		return
	}
	f.PricePerPod = Round2(f.PricePerBox / f.PodsPerBox)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CoerceNumber clamps v to a non-negative finite number.
// NaN, infinities and negatives all collapse to zero.
func CoerceNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseNumber parses s as a number, returning zero on any failure.
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return CoerceNumber(v)
}

// ErrorKind discriminates typed application errors.
type ErrorKind string

const (
	// KindAuthentication marks a credential rejection.
	KindAuthentication ErrorKind = "authentication"
	// KindNetwork marks a no-connection transport failure.
	KindNetwork ErrorKind = "network"
	// KindServer marks a 5xx server failure.
	KindServer ErrorKind = "server"
	// KindTimeout marks an exceeded transport deadline.
	KindTimeout ErrorKind = "timeout"
	// KindParsing marks a malformed or unparseable response.
	KindParsing ErrorKind = "parsing"
	// KindUnknown marks an unclassified failure.
	KindUnknown ErrorKind = "unknown"
)

// AppError is a structured error value carrying a discriminant kind,
// a user-facing message and optional diagnostics.
type AppError struct {
	// ID is the unique identifier of this error instance.
	ID string `json:"id"`
	// Kind is the error discriminant.
	Kind ErrorKind `json:"kind"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Details holds an optional diagnostic string.
	Details string `json:"details,omitempty"`
	// StatusCode holds the HTTP status for server errors, zero otherwise.
	StatusCode int `json:"statusCode,omitempty"`
	// Timestamp records when the failure occurred.
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Details != "" {
		return string(e.Kind) + ": " + e.Message + " (" + e.Details + ")"
	}
	return string(e.Kind) + ": " + e.Message
}
