// Package record defines the 13-field patient feature record submitted to
// the scoring service, along with input normalization and demo sampling.
package record

import (
	"fmt"
	"math"
)

// FeatureRecord is the fully-typed input to the scoring service. JSON tags
// carry the wire names expected by the service.
type FeatureRecord struct {
	Age            float64 `json:"age"`
	Sex            int     `json:"sex"`      // 0 female, 1 male
	ChestPain      int     `json:"cp"`       // 0-3
	RestingBP      float64 `json:"trestbps"` // mmHg
	Cholesterol    float64 `json:"chol"`     // mg/dl
	FastingBS      int     `json:"fbs"`      // 1 if fasting blood sugar > 120 mg/dl
	RestingECG     int     `json:"restecg"`  // 0-2
	MaxHeartRate   float64 `json:"thalach"`
	ExerciseAngina int     `json:"exang"` // 0 or 1
	OldPeak        float64 `json:"oldpeak"`
	Slope          int     `json:"slope"` // 0-2
	VesselCount    int     `json:"ca"`    // 0-3
	Thalassemia    int     `json:"thal"`  // 1-3
}

// Valid reports whether every continuous field is a finite number. A record
// produced by Normalize or Random always satisfies this.
func (r FeatureRecord) Valid() error {
	for name, v := range map[string]float64{
		"age":      r.Age,
		"trestbps": r.RestingBP,
		"chol":     r.Cholesterol,
		"thalach":  r.MaxHeartRate,
		"oldpeak":  r.OldPeak,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("field %s is not finite", name)
		}
	}
	return nil
}

// FormInput holds raw form state before normalization. The five free-text
// numeric fields arrive as strings and may be empty or garbage; categorical
// fields come from constrained controls and are already valid codes.
type FormInput struct {
	Age          string
	RestingBP    string
	Cholesterol  string
	MaxHeartRate string
	OldPeak      string

	Sex            int
	ChestPain      int
	FastingBS      int
	RestingECG     int
	ExerciseAngina int
	Slope          int
	VesselCount    int
	Thalassemia    int
}

// Defaults is the fallback table for the free-text numeric fields.
type Defaults struct {
	Age          float64
	RestingBP    float64
	Cholesterol  float64
	MaxHeartRate float64
	OldPeak      float64
}

// DefaultValues returns the configured fallback values substituted for
// empty or unparsable free-text input.
func DefaultValues() Defaults {
	return Defaults{
		Age:          50,
		RestingBP:    120,
		Cholesterol:  200,
		MaxHeartRate: 150,
		OldPeak:      0,
	}
}
