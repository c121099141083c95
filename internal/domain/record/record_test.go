package record_test

import (
	"math"
	"testing"

	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFeatureRecordValid(t *testing.T) {
	Convey("Given a feature record", t, func() {
		Convey("When all continuous fields are finite", func() {
			rec := record.FeatureRecord{Age: 50, RestingBP: 120, Cholesterol: 200, MaxHeartRate: 150, OldPeak: 0}

			Convey("Then it should be valid", func() {
				So(rec.Valid(), ShouldBeNil)
			})
		})

		Convey("When a continuous field is NaN", func() {
			rec := record.FeatureRecord{Age: 50, RestingBP: math.NaN(), Cholesterol: 200, MaxHeartRate: 150}

			Convey("Then validation should fail", func() {
				So(rec.Valid(), ShouldNotBeNil)
			})
		})

		Convey("When a continuous field is infinite", func() {
			rec := record.FeatureRecord{Age: 50, RestingBP: 120, Cholesterol: math.Inf(1), MaxHeartRate: 150}

			Convey("Then validation should fail", func() {
				So(rec.Valid(), ShouldNotBeNil)
			})
		})
	})
}
