package scoring_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/adapters/scoring"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRecord() record.FeatureRecord {
	return record.FeatureRecord{
		Age: 50, Sex: 1, ChestPain: 1, RestingBP: 120, Cholesterol: 200,
		FastingBS: 0, RestingECG: 0, MaxHeartRate: 150, ExerciseAngina: 0,
		OldPeak: 0, Slope: 1, VesselCount: 0, Thalassemia: 2,
	}
}

func TestPredict(t *testing.T) {
	Convey("Given a scoring service", t, func() {
		ctx := context.Background()

		Convey("When the service scores a record", func() {
			var (
				gotMethod string
				gotPath   string
				captured  map[string]any
			)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				_ = json.NewDecoder(r.Body).Decode(&captured)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"prob": 0.82, "top_features": [{"feature": "cp", "importance": 0.31}]}`))
			}))
			defer srv.Close()

			client := scoring.New(srv.URL)
			result, err := client.Predict(ctx, sampleRecord(), "user-1")

			Convey("Then the result should decode", func() {
				So(err, ShouldBeNil)
				So(result.Probability, ShouldEqual, 0.82)
				So(result.TopFeatures, ShouldHaveLength, 1)
				So(result.TopFeatures[0].Feature, ShouldEqual, "cp")
			})

			Convey("And the request should hit POST /predict", func() {
				So(gotMethod, ShouldEqual, http.MethodPost)
				So(gotPath, ShouldEqual, "/predict")
			})

			Convey("And the payload should be one flat object with wire names and identity", func() {
				So(captured["age"], ShouldEqual, 50)
				So(captured["cp"], ShouldEqual, 1)
				So(captured["trestbps"], ShouldEqual, 120)
				So(captured["thalach"], ShouldEqual, 150)
				So(captured["thal"], ShouldEqual, 2)
				So(captured["user_id"], ShouldEqual, "user-1")
				So(captured, ShouldHaveLength, 14)
			})
		})

		Convey("When the service answers with a structured error", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error": "Missing features: ['thal']"}`))
			}))
			defer srv.Close()

			client := scoring.New(srv.URL)
			_, err := client.Predict(ctx, sampleRecord(), "user-1")

			Convey("Then the error should carry the service message", func() {
				var se *scoring.ServiceError
				So(errors.As(err, &se), ShouldBeTrue)
				So(se.Message, ShouldEqual, "Missing features: ['thal']")
				So(se.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the service fails without a structured body", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("upstream exploded"))
			}))
			defer srv.Close()

			client := scoring.New(srv.URL)
			_, err := client.Predict(ctx, sampleRecord(), "user-1")

			Convey("Then a generic service error should surface the status", func() {
				var se *scoring.ServiceError
				So(errors.As(err, &se), ShouldBeTrue)
				So(se.Message, ShouldEqual, "")
				So(se.Error(), ShouldContainSubstring, "502")
			})
		})
	})
}

func TestHistory(t *testing.T) {
	Convey("Given a history service", t, func() {
		ctx := context.Background()

		Convey("When fetching history for a user", func() {
			var (
				gotPath string
				gotUser string
			)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotUser = r.URL.Query().Get("user_id")
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"predictions": [
						{"timestamp": "2026-08-30T14:02:11.503271", "input": {"age": 50, "sex": 1}, "prob": 0.82, "top_features": []},
						{"timestamp": "2026-08-29T09:00:00.000000", "input": {"age": 61, "sex": 0}, "prob": 0.35, "top_features": []}
					],
					"count": 2
				}`))
			}))
			defer srv.Close()

			client := scoring.New(srv.URL)
			entries, err := client.History(ctx, "user a+b")

			Convey("Then entries should decode in server order", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Probability, ShouldEqual, 0.82)
				So(entries[0].Input.Age, ShouldEqual, 50)
				So(entries[1].Probability, ShouldEqual, 0.35)
				So(entries[1].Input.Sex, ShouldEqual, 0)
			})

			Convey("And the identity should be query-escaped", func() {
				So(gotPath, ShouldEqual, "/history")
				So(gotUser, ShouldEqual, "user a+b")
			})
		})

		Convey("When the history endpoint fails", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error": "Database not connected"}`))
			}))
			defer srv.Close()

			client := scoring.New(srv.URL)
			entries, err := client.History(ctx, "user-1")

			Convey("Then the error should surface and no entries return", func() {
				So(entries, ShouldBeNil)
				var se *scoring.ServiceError
				So(errors.As(err, &se), ShouldBeTrue)
				So(se.Message, ShouldEqual, "Database not connected")
			})
		})
	})
}

func TestPing(t *testing.T) {
	Convey("Given the health endpoint", t, func() {
		ctx := context.Background()

		Convey("When the service is healthy", func() {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_, _ = w.Write([]byte(`{"status": "healthy"}`))
			}))
			defer srv.Close()

			err := scoring.New(srv.URL).Ping(ctx)
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/ping")
		})

		Convey("When the service is down", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			}))
			defer srv.Close()

			err := scoring.New(srv.URL).Ping(ctx)
			So(errors.Is(err, scoring.ErrUnhealthy), ShouldBeTrue)
		})
	})
}
