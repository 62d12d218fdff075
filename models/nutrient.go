package models

import (
	"math"
	"strconv"
)

// NotApplicable is the sentinel stored for nutrient values the provider
// never disclosed. Absence is distinct from zero: a food with 0g of sugar
// reports "0", a food with no sugar data reports "N/A".
const NotApplicable = "N/A"

// Nutrient is an optional nutrient value. Provider servings leave fields
// out entirely; persisted food entries carry the "N/A" string instead.
// Everything in between works on this type so absence survives scaling.
type Nutrient struct {
	Value float64
	OK    bool
}

func SomeNutrient(v float64) Nutrient {
	return Nutrient{Value: v, OK: true}
}

// ParseNutrient reads a provider field. Empty strings and the "N/A"
// sentinel both mean the value was never disclosed.
func ParseNutrient(s string) Nutrient {
	if s == "" || s == NotApplicable {
		return Nutrient{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Nutrient{}
	}
	return Nutrient{Value: v, OK: true}
}

// Scale multiplies a present value by factor; absent stays absent.
func (n Nutrient) Scale(factor float64) Nutrient {
	if !n.OK {
		return n
	}
	return Nutrient{Value: n.Value * factor, OK: true}
}

// String formats for the persisted FoodListItem shape: whole numbers,
// "N/A" when absent.
func (n Nutrient) String() string {
	if !n.OK {
		return NotApplicable
	}
	return strconv.FormatFloat(math.Round(n.Value), 'f', -1, 64)
}

// Fixed formats a present value with the given number of decimals,
// "N/A" when absent. Serving amounts use one decimal.
func (n Nutrient) Fixed(decimals int) string {
	if !n.OK {
		return NotApplicable
	}
	return strconv.FormatFloat(n.Value, 'f', decimals, 64)
}

// OrZero collapses absence to 0 for summation. Totals treat undisclosed
// nutrients as contributing nothing.
func (n Nutrient) OrZero() float64 {
	if !n.OK {
		return 0
	}
	return n.Value
}

// Add combines two optional values; the result is absent only when both
// operands are.
func (n Nutrient) Add(other Nutrient) Nutrient {
	if !n.OK && !other.OK {
		return Nutrient{}
	}
	return Nutrient{Value: n.OrZero() + other.OrZero(), OK: true}
}
