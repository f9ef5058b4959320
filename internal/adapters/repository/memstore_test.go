package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/premia/internal/adapters/repository"
	"github.com/okian/premia/internal/domain/model"
	"github.com/okian/premia/internal/domain/rules"
)

func TestMemStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with the default seed", t, func() {
		store := repository.NewMemStore()

		Convey("Then the initial snapshot carries the seed session", func() {
			s := store.Snapshot(ctx)
			So(s.BaseRate.String(), ShouldEqual, "50")
			So(s.TierPolicy, ShouldEqual, rules.TierPolicyFirst)
			So(s.Tiers, ShouldHaveLength, 2)
			So(s.Bonuses, ShouldHaveLength, 1)
			So(s.Scenarios, ShouldHaveLength, 16)
		})

		Convey("When mutating a snapshot", func() {
			s := store.Snapshot(ctx)
			s.Tiers[0].Value = decimal.NewFromInt(9999)
			s.Scenarios[0]["punkte"] = -1

			Convey("Then the store is unaffected", func() {
				fresh := store.Snapshot(ctx)
				So(fresh.Tiers[0].Value.String(), ShouldEqual, "100")
				So(fresh.Scenarios[0]["punkte"], ShouldEqual, 73)
			})
		})

		Convey("When updating through the store", func() {
			err := store.Update(ctx, func(s *model.Session) {
				s.BaseRate = decimal.NewFromInt(25)
				s.Tiers = nil
			})

			Convey("Then the change is visible to later snapshots", func() {
				So(err, ShouldBeNil)
				s := store.Snapshot(ctx)
				So(s.BaseRate.String(), ShouldEqual, "25")
				So(s.Tiers, ShouldHaveLength, 0)
			})

			Convey("And Reset restores the seed", func() {
				store.Reset(ctx)
				s := store.Snapshot(ctx)
				So(s.BaseRate.String(), ShouldEqual, "50")
				So(s.Tiers, ShouldHaveLength, 2)
			})
		})

		Convey("When updating with a nil mutation", func() {
			err := store.Update(ctx, nil)

			Convey("Then the nil-mutation error is returned", func() {
				So(errors.Is(err, repository.ErrNilMutation), ShouldBeTrue)
			})
		})
	})

	Convey("Given a store with a custom seed", t, func() {
		seed := func() model.Session {
			return model.Session{
				BaseRate:    decimal.NewFromInt(10),
				TierPolicy:  rules.TierPolicyMaxRange,
				BonusPolicy: rules.BonusPolicySum,
			}
		}
		store := repository.NewMemStore(repository.WithSeed(seed))

		Convey("Then the seed shapes both the initial session and Reset", func() {
			So(store.Snapshot(ctx).BaseRate.String(), ShouldEqual, "10")

			So(store.Update(ctx, func(s *model.Session) {
				s.BaseRate = decimal.NewFromInt(99)
			}), ShouldBeNil)
			store.Reset(ctx)
			So(store.Snapshot(ctx).BaseRate.String(), ShouldEqual, "10")
			So(store.Snapshot(ctx).TierPolicy, ShouldEqual, rules.TierPolicyMaxRange)
		})
	})
}
