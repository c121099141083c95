package identity_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/identity"
	. "github.com/smartystreets/goconvey/convey"
)

var uuidShape = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// fakeKV is an in-memory KV with optional injected failures.
type fakeKV struct {
	data    map[string]string
	getErr  error
	putErr  error
	putKeys []string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (f *fakeKV) Put(_ context.Context, key, value string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.putKeys = append(f.putKeys, key)
	f.data[key] = value
	return nil
}

func TestGetOrCreate(t *testing.T) {
	Convey("Given an identity store over working storage", t, func() {
		ctx := context.Background()
		kv := newFakeKV()
		store := identity.New(kv)

		Convey("When called for the first time", func() {
			id := store.GetOrCreate(ctx)

			Convey("Then it should mint a UUID-v4-shaped token", func() {
				So(uuidShape.MatchString(id), ShouldBeTrue)
			})

			Convey("And it should persist the token before returning", func() {
				So(kv.data["identity"], ShouldEqual, id)
			})
		})

		Convey("When called twice in the same storage context", func() {
			first := store.GetOrCreate(ctx)
			second := store.GetOrCreate(ctx)

			Convey("Then both calls should return the identical value", func() {
				So(second, ShouldEqual, first)
			})

			Convey("And only one write should have happened", func() {
				So(kv.putKeys, ShouldHaveLength, 1)
			})
		})

		Convey("When a token already exists in storage", func() {
			kv.data["identity"] = "pre-existing-token"
			fresh := identity.New(kv)

			Convey("Then it should be returned unchanged", func() {
				So(fresh.GetOrCreate(ctx), ShouldEqual, "pre-existing-token")
			})
		})
	})

	Convey("Given an identity store over broken storage", t, func() {
		ctx := context.Background()
		kv := newFakeKV()
		kv.getErr = errors.New("disk gone")
		kv.putErr = errors.New("disk gone")
		store := identity.New(kv)

		Convey("When called repeatedly", func() {
			first := store.GetOrCreate(ctx)
			second := store.GetOrCreate(ctx)

			Convey("Then it should degrade to a stable session-scoped token", func() {
				So(uuidShape.MatchString(first), ShouldBeTrue)
				So(second, ShouldEqual, first)
			})
		})
	})

	Convey("Given an identity store with no storage at all", t, func() {
		ctx := context.Background()
		store := identity.New(nil)

		Convey("When called", func() {
			id := store.GetOrCreate(ctx)

			Convey("Then it should still mint a valid token", func() {
				So(uuidShape.MatchString(id), ShouldBeTrue)
				So(store.GetOrCreate(ctx), ShouldEqual, id)
			})
		})
	})
}
