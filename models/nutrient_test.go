package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNutrient(t *testing.T) {
	tests := []struct {
		in    string
		value float64
		ok    bool
	}{
		{in: "27", value: 27, ok: true},
		{in: "1.3", value: 1.3, ok: true},
		{in: "0", value: 0, ok: true},
		{in: "", ok: false},
		{in: "N/A", ok: false},
		{in: "abc", ok: false},
	}

	for _, tt := range tests {
		n := ParseNutrient(tt.in)
		assert.Equalf(t, tt.ok, n.OK, "input %q", tt.in)
		if tt.ok {
			assert.InDeltaf(t, tt.value, n.Value, 0.0001, "input %q", tt.in)
		}
	}
}

func TestNutrientScale(t *testing.T) {
	assert.InDelta(t, 54, SomeNutrient(27).Scale(2).Value, 0.0001)
	assert.False(t, Nutrient{}.Scale(2).OK, "absent stays absent through scaling")
}

func TestNutrientString(t *testing.T) {
	assert.Equal(t, "54", SomeNutrient(54.4).String())
	assert.Equal(t, "55", SomeNutrient(54.5).String())
	assert.Equal(t, "0", SomeNutrient(0).String())
	assert.Equal(t, NotApplicable, Nutrient{}.String())
}

func TestNutrientFixed(t *testing.T) {
	assert.Equal(t, "2.5", SomeNutrient(2.5).Fixed(1))
	assert.Equal(t, "2.0", SomeNutrient(2).Fixed(1))
	assert.Equal(t, NotApplicable, Nutrient{}.Fixed(1))
}

func TestNutrientAdd(t *testing.T) {
	sum := SomeNutrient(1).Add(SomeNutrient(0.5))
	assert.True(t, sum.OK)
	assert.InDelta(t, 1.5, sum.Value, 0.0001)

	// one present operand is enough
	half := Nutrient{}.Add(SomeNutrient(10))
	assert.True(t, half.OK)
	assert.InDelta(t, 10, half.Value, 0.0001)

	assert.False(t, Nutrient{}.Add(Nutrient{}).OK)
}

func TestNutrientOrZero(t *testing.T) {
	assert.InDelta(t, 3.5, SomeNutrient(3.5).OrZero(), 0.0001)
	assert.Zero(t, Nutrient{}.OrZero())
}
