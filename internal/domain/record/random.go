package record

import (
	"math/rand"
)

// Sampling bounds for demo records. All ranges are inclusive.
const (
	ageMin     = 25
	ageSpan    = 55 // 25-79
	bpMin      = 90
	bpSpan     = 90 // 90-179
	cholMin    = 150
	cholSpan   = 250 // 150-399
	hrMin      = 80
	hrSpan     = 120 // 80-199
	oldpeakMax = 60  // 0.0-6.0 in 0.1 steps

	thalMin = 1
)

// Random produces a FeatureRecord by independently sampling every field
// within clinically plausible bounds. It is a demo/exploration input
// generator, not a normalizer: the result fully replaces the form state.
func Random() FeatureRecord {
	return FeatureRecord{
		Age:            float64(ageMin + rand.Intn(ageSpan)),   //nolint:gosec // demo sampling, not security sensitive
		Sex:            rand.Intn(2),                           //nolint:gosec // demo sampling
		ChestPain:      rand.Intn(4),                           //nolint:gosec // demo sampling
		RestingBP:      float64(bpMin + rand.Intn(bpSpan)),     //nolint:gosec // demo sampling
		Cholesterol:    float64(cholMin + rand.Intn(cholSpan)), //nolint:gosec // demo sampling
		FastingBS:      rand.Intn(2),                           //nolint:gosec // demo sampling
		RestingECG:     rand.Intn(3),                           //nolint:gosec // demo sampling
		MaxHeartRate:   float64(hrMin + rand.Intn(hrSpan)),     //nolint:gosec // demo sampling
		ExerciseAngina: rand.Intn(2),                           //nolint:gosec // demo sampling
		OldPeak:        float64(rand.Intn(oldpeakMax+1)) / 10,  //nolint:gosec // demo sampling
		Slope:          rand.Intn(3),                           //nolint:gosec // demo sampling
		VesselCount:    rand.Intn(4),                           //nolint:gosec // demo sampling
		Thalassemia:    thalMin + rand.Intn(3),                 //nolint:gosec // demo sampling
	}
}
