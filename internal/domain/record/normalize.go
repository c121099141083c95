package record

import (
	"math"
	"strconv"
	"strings"
)

// Normalize converts raw form input into a valid FeatureRecord. Free-text
// numeric fields that are empty, non-numeric or non-finite are silently
// replaced by the configured default; valid numeric strings are parsed as
// floats. Categorical fields pass through unchanged. This is the only
// validation gate before a record leaves the client, and it never fails.
func Normalize(in FormInput, d Defaults) FeatureRecord {
	return FeatureRecord{
		Age:            parseOrDefault(in.Age, d.Age),
		Sex:            in.Sex,
		ChestPain:      in.ChestPain,
		RestingBP:      parseOrDefault(in.RestingBP, d.RestingBP),
		Cholesterol:    parseOrDefault(in.Cholesterol, d.Cholesterol),
		FastingBS:      in.FastingBS,
		RestingECG:     in.RestingECG,
		MaxHeartRate:   parseOrDefault(in.MaxHeartRate, d.MaxHeartRate),
		ExerciseAngina: in.ExerciseAngina,
		OldPeak:        parseOrDefault(in.OldPeak, d.OldPeak),
		Slope:          in.Slope,
		VesselCount:    in.VesselCount,
		Thalassemia:    in.Thalassemia,
	}
}

// parseOrDefault parses raw as a float, substituting def for anything that
// is empty, unparsable, NaN or infinite.
func parseOrDefault(raw string, def float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
