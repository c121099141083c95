// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/domain/record"
)

// Timestamp layouts accepted from the history service. The service emits
// ISO-8601 instants that may omit the zone designator.
var timestampLayouts = []string{ //nolint:gochecknoglobals // static parse table
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// FeatureWeight is one (feature name, importance) pair from the scoring
// model. Importance sign and magnitude are meaningful but unbounded.
type FeatureWeight struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// Prediction is the scoring service's answer for one submission: a
// probability in [0,1] plus an ordered feature-importance ranking. A newer
// prediction supersedes it wholesale; predictions are never merged.
type Prediction struct {
	Probability float64         `json:"prob"`
	TopFeatures []FeatureWeight `json:"top_features"`
}

// HistoryEntry is one immutable past prediction as returned by the history
// service. The raw timestamp string is preserved; At parses it on demand.
type HistoryEntry struct {
	Timestamp   string               `json:"timestamp"`
	Input       record.FeatureRecord `json:"input"`
	Probability float64              `json:"prob"`
	TopFeatures []FeatureWeight      `json:"top_features"`
}

// At parses the entry timestamp. Zoneless instants are interpreted as UTC,
// matching how the history service stores them.
func (e HistoryEntry) At() (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.ParseInLocation(layout, e.Timestamp, time.UTC)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
