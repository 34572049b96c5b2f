package service

import "github.com/shopspring/decimal"

// roundCents rounds a monetary value to the nearest cent, half away from
// zero. Every intermediate monetary value in this package passes through it;
// unrounded fractional cents are never carried forward.
func roundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
