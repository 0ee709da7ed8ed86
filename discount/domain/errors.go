package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument é o erro base para entradas fora do domínio
// (preço negativo, taxa fora de [0, 1], NaN/Inf).
var ErrInvalidArgument = errors.New("invalid argument")

type ArgumentError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %s (got %v)", ErrInvalidArgument, e.Field, e.Reason, e.Value)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

func ValidatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return &ArgumentError{Field: "price", Value: price, Reason: "must be finite"}
	}
	if price < 0 {
		return &ArgumentError{Field: "price", Value: price, Reason: "must be non-negative"}
	}
	return nil
}

// ValidateRate aceita os extremos: 0 (sem desconto) e 1 (gratuito).
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return &ArgumentError{Field: "rate", Value: rate, Reason: "must be finite"}
	}
	if rate < 0 || rate > 1 {
		return &ArgumentError{Field: "rate", Value: rate, Reason: "must be within [0, 1]"}
	}
	return nil
}
