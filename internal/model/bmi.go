package model

import (
	"math"
	"time"
)

type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

var bmiDescriptions = map[BMICategory]string{
	BMIUnderweight: "Your BMI indicates you may be underweight. Consider consulting a healthcare provider.",
	BMINormal:      "Your BMI indicates a healthy weight range. Keep up the good work!",
	BMIOverweight:  "Your BMI indicates you may be overweight. Consider lifestyle changes and consult a healthcare provider.",
	BMIObese:       "Your BMI indicates obesity. Please consult a healthcare provider for guidance.",
}

// BMICategoryFor buckets a BMI value into its category.
func BMICategoryFor(value float64) BMICategory {
	switch {
	case value < 18.5:
		return BMIUnderweight
	case value < 25:
		return BMINormal
	case value < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// Description returns the fixed advisory text for the category.
func (c BMICategory) Description() string {
	return bmiDescriptions[c]
}

// RoundBMI rounds a BMI value to one decimal place for display and storage.
func RoundBMI(value float64) float64 {
	return math.Round(value*10) / 10
}

// BMIRecord is one computed measurement. History is append-only; records are
// never mutated or deleted.
type BMIRecord struct {
	Value       float64     `json:"bmi"`
	Weight      float64     `json:"weight"`
	Height      float64     `json:"height"`
	Age         int         `json:"age"`
	Category    BMICategory `json:"category"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
}
