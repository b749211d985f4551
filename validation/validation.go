// Package validation collects form violations as field -> message-code maps.
// The codes are translated by the view layer.
package validation

import (
	"math"
	"strconv"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Required flags empty or whitespace-only values.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Decimal flags values that are neither empty nor a finite number. Empty is
// allowed here; combine with Required when the field is mandatory.
func Decimal(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		v[field] = "invalid_number"
	}
}

// Unique flags a value that already exists elsewhere.
func Unique(field, value string, taken func(string) bool, v Violations) {
	if taken(value) {
		v[field] = "already_exists"
	}
}
