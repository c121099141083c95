package risk_test

import (
	"testing"

	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/domain/risk"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given the risk classifier", t, func() {
		Convey("When the probability exceeds the high threshold", func() {
			So(risk.Classify(0.71), ShouldEqual, risk.High)
			So(risk.Classify(0.82), ShouldEqual, risk.High)
			So(risk.Classify(1.0), ShouldEqual, risk.High)
		})

		Convey("When the probability sits between the thresholds", func() {
			So(risk.Classify(0.41), ShouldEqual, risk.Medium)
			So(risk.Classify(0.5), ShouldEqual, risk.Medium)
			So(risk.Classify(0.69), ShouldEqual, risk.Medium)
		})

		Convey("When the probability is at or below the medium threshold", func() {
			So(risk.Classify(0.4), ShouldEqual, risk.Low)
			So(risk.Classify(0.1), ShouldEqual, risk.Low)
			So(risk.Classify(0.0), ShouldEqual, risk.Low)
		})

		Convey("When the probability is exactly on a boundary", func() {
			Convey("Then 0.7 should classify as Medium", func() {
				So(risk.Classify(0.7), ShouldEqual, risk.Medium)
			})
			Convey("And 0.4 should classify as Low", func() {
				So(risk.Classify(0.4), ShouldEqual, risk.Low)
			})
		})

		Convey("When the probability is outside [0,1]", func() {
			So(risk.Classify(-0.5), ShouldEqual, risk.Low)
			So(risk.Classify(1.5), ShouldEqual, risk.High)
		})

		Convey("When comparing tiers for severity", func() {
			So(risk.Low, ShouldBeLessThan, risk.Medium)
			So(risk.Medium, ShouldBeLessThan, risk.High)
		})

		Convey("When rendering tier labels", func() {
			So(risk.Low.String(), ShouldEqual, "Low")
			So(risk.Medium.String(), ShouldEqual, "Medium")
			So(risk.High.String(), ShouldEqual, "High")
		})
	})
}
