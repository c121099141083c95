// Package service owns the prediction request lifecycle and the history
// cache that trails it.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/adapters/scoring"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/domain/model"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/domain/record"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/pkg/logger"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/pkg/metrics"
)

// fallbackErrorMessage is shown when the service gives no structured error.
const fallbackErrorMessage = "An error occurred during prediction"

// State is the submission lifecycle state of the session.
type State int

const (
	Idle State = iota
	Submitting
	Resolved
	Failed
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case Submitting:
		return "Submitting"
	case Resolved:
		return "Resolved"
	case Failed:
		return "Failed"
	default:
		return "Idle"
	}
}

// Predictor abstracts the remote scoring call the session makes.
type Predictor interface {
	Predict(ctx context.Context, rec record.FeatureRecord, userID string) (model.Prediction, error)
}

// Session coordinates submissions against a single logical current
// prediction for one identity.
//
// Callers are expected to hold at most one Submit in flight at a time (the
// UI disables its trigger while Submitting). The session does not queue or
// reject overlapping calls; instead every submission carries a sequence tag
// and a completion older than the newest applied one is discarded, so a
// slow stale response can never overwrite newer state.
type Session struct {
	mu sync.Mutex

	predictor Predictor
	history   *Cache
	identity  string

	state   State
	result  *model.Prediction
	errMsg  string
	seq     uint64
	applied uint64

	log logger.Logger
}

// NewSession creates a session for the given identity. history may be nil
// when no cache is wired; result handling is unaffected.
func NewSession(predictor Predictor, history *Cache, identity string, opts ...Option) *Session {
	s := &Session{
		predictor: predictor,
		history:   history,
		identity:  identity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit sends one feature record to the scoring service. The record is a
// by-value snapshot; later form edits cannot affect an in-flight request.
//
// On success the result becomes current and exactly one history refresh is
// scheduled, detached from ctx; a refresh failure never reverts the result.
// On failure the previous result is left untouched and ErrorMessage carries
// the service's message, or a generic fallback. No retry, no timeout here;
// the transport layer bounds the round trip.
func (s *Session) Submit(ctx context.Context, rec record.FeatureRecord) (model.Prediction, error) {
	s.mu.Lock()
	s.seq++
	tag := s.seq
	s.state = Submitting
	s.errMsg = ""
	s.mu.Unlock()

	metrics.RecordPredictionSubmitted()
	start := time.Now()

	result, err := s.predictor.Predict(ctx, rec, s.identity)

	s.mu.Lock()
	defer s.mu.Unlock()

	if tag <= s.applied {
		// A newer submission already completed; this outcome is stale.
		metrics.RecordStaleResponseDropped()
		s.debug(ctx, "discarded stale submission outcome")
		return result, err
	}
	s.applied = tag

	if err != nil {
		s.state = Failed
		s.errMsg = messageFrom(err)
		metrics.RecordPredictionFailed()
		s.warn(ctx, "prediction failed", logger.Error(err))
		return model.Prediction{}, err
	}

	s.state = Resolved
	current := result
	s.result = &current
	metrics.RecordPredictionResolved(time.Since(start).Seconds())

	if s.history != nil {
		// Fire-and-forget relative to the caller; detached from ctx so a
		// returning caller cannot cancel it.
		go s.refreshHistory(context.WithoutCancel(ctx))
	}

	return result, nil
}

func (s *Session) refreshHistory(ctx context.Context) {
	if err := s.history.Refresh(ctx, s.identity); err != nil {
		s.warn(ctx, "history refresh after prediction failed", logger.Error(err))
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns a copy of the current prediction, or nil before the first
// successful submission.
func (s *Session) Result() *model.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	cp := *s.result
	cp.TopFeatures = append([]model.FeatureWeight(nil), s.result.TopFeatures...)
	return &cp
}

// ErrorMessage returns the displayable error for the last failed
// submission, or empty when none is pending display.
func (s *Session) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Identity returns the identity this session submits under.
func (s *Session) Identity() string {
	return s.identity
}

func (s *Session) warn(ctx context.Context, msg string, fields ...logger.Field) {
	if s.log != nil {
		s.log.Warn(ctx, msg, fields...)
	}
}

func (s *Session) debug(ctx context.Context, msg string, fields ...logger.Field) {
	if s.log != nil {
		s.log.Debug(ctx, msg, fields...)
	}
}

// messageFrom extracts the human-readable message for a failed submission.
func messageFrom(err error) string {
	var se *scoring.ServiceError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallbackErrorMessage
}
