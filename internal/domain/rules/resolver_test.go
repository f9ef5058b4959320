package rules_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/premia/internal/domain/rules"
)

func rule(from, to int, value int64) rules.Rule {
	return rules.Rule{From: from, To: to, Value: decimal.NewFromInt(value)}
}

func TestResolveRate(t *testing.T) {
	baseRate := decimal.NewFromInt(25)
	tiers := rules.Table{
		rule(1, 2, 75),
		rule(3, 5, 50),
		rule(6, 10, 35),
	}

	Convey("Given a tier table without overlaps", t, func() {
		Convey("When resolving ranks with the first policy", func() {
			Convey("Then a rank inside a range gets that range's rate", func() {
				So(rules.ResolveRate(1, tiers, baseRate, rules.TierPolicyFirst).String(), ShouldEqual, "75")
				So(rules.ResolveRate(4, tiers, baseRate, rules.TierPolicyFirst).String(), ShouldEqual, "50")
				So(rules.ResolveRate(10, tiers, baseRate, rules.TierPolicyFirst).String(), ShouldEqual, "35")
			})

			Convey("And a rank outside every range falls back to the base rate", func() {
				So(rules.ResolveRate(12, tiers, baseRate, rules.TierPolicyFirst).String(), ShouldEqual, "25")
			})
		})
	})

	Convey("Given overlapping tiers", t, func() {
		overlapping := rules.Table{
			rule(1, 3, 100),
			rule(1, 5, 10),
		}

		Convey("When resolving with the first policy", func() {
			Convey("Then the earliest matching row in sorted order wins", func() {
				So(rules.ResolveRate(2, overlapping, baseRate, rules.TierPolicyFirst).String(), ShouldEqual, "100")
			})
		})

		Convey("When resolving with the max_range policy", func() {
			Convey("Then the narrowest matching range wins", func() {
				So(rules.ResolveRate(2, overlapping, baseRate, rules.TierPolicyMaxRange).String(), ShouldEqual, "100")
			})

			Convey("And a rank matched only by the wide range gets its rate", func() {
				So(rules.ResolveRate(5, overlapping, baseRate, rules.TierPolicyMaxRange).String(), ShouldEqual, "10")
			})
		})

		Convey("When two matching ranges have the same width", func() {
			tied := rules.Table{
				rule(1, 3, 40),
				rule(2, 4, 60),
			}

			Convey("Then the lower from-rank breaks the tie", func() {
				So(rules.ResolveRate(3, tied, baseRate, rules.TierPolicyMaxRange).String(), ShouldEqual, "40")
			})
		})
	})

	Convey("Given an empty tier table", t, func() {
		Convey("Then every rank resolves to the base rate", func() {
			So(rules.ResolveRate(1, nil, baseRate, rules.TierPolicyFirst).String(), ShouldEqual, "25")
			So(rules.ResolveRate(999, rules.Table{}, baseRate, rules.TierPolicyMaxRange).String(), ShouldEqual, "25")
		})
	})

	Convey("Given an unknown tier policy", t, func() {
		Convey("Then resolution behaves like first", func() {
			got := rules.ResolveRate(1, tiers, baseRate, rules.TierPolicy("bogus"))
			So(got.String(), ShouldEqual, "75")
		})
	})
}

func TestResolveBonus(t *testing.T) {
	bonuses := rules.Table{
		rule(1, 1, 2500),
		rule(2, 2, 2000),
	}

	Convey("Given a bonus table without overlaps", t, func() {
		Convey("Then the sum policy returns the single matching bonus", func() {
			So(rules.ResolveBonus(1, bonuses, rules.BonusPolicySum).String(), ShouldEqual, "2500")
			So(rules.ResolveBonus(2, bonuses, rules.BonusPolicySum).String(), ShouldEqual, "2000")
		})

		Convey("And a rank without a match yields zero", func() {
			So(rules.ResolveBonus(3, bonuses, rules.BonusPolicySum).IsZero(), ShouldBeTrue)
			So(rules.ResolveBonus(3, bonuses, rules.BonusPolicyFirst).IsZero(), ShouldBeTrue)
			So(rules.ResolveBonus(3, bonuses, rules.BonusPolicyMax).IsZero(), ShouldBeTrue)
		})
	})

	Convey("Given overlapping bonus rows", t, func() {
		overlapping := append(rules.Table{rule(1, 2, 500)}, bonuses...).Normalize()

		Convey("Then first returns the earliest matching row", func() {
			So(rules.ResolveBonus(1, overlapping, rules.BonusPolicyFirst).String(), ShouldEqual, "2500")
		})

		Convey("And max returns the largest matching bonus", func() {
			So(rules.ResolveBonus(1, overlapping, rules.BonusPolicyMax).String(), ShouldEqual, "2500")
			So(rules.ResolveBonus(2, overlapping, rules.BonusPolicyMax).String(), ShouldEqual, "2000")
		})

		Convey("And sum adds every matching bonus", func() {
			So(rules.ResolveBonus(1, overlapping, rules.BonusPolicySum).String(), ShouldEqual, "3000")
			So(rules.ResolveBonus(2, overlapping, rules.BonusPolicySum).String(), ShouldEqual, "2500")
		})
	})

	Convey("Given an unknown bonus policy", t, func() {
		Convey("Then resolution aggregates like sum", func() {
			overlapping := append(rules.Table{rule(1, 2, 500)}, bonuses...).Normalize()
			got := rules.ResolveBonus(1, overlapping, rules.BonusPolicy("bogus"))
			So(got.String(), ShouldEqual, "3000")
		})
	})
}

func TestParsePolicies(t *testing.T) {
	Convey("Given policy strings", t, func() {
		Convey("Then known tier policies parse", func() {
			p, err := rules.ParseTierPolicy("first")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, rules.TierPolicyFirst)

			p, err = rules.ParseTierPolicy(" MAX_RANGE ")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, rules.TierPolicyMaxRange)
		})

		Convey("And known bonus policies parse", func() {
			for _, s := range []string{"first", "max", "sum"} {
				_, err := rules.ParseBonusPolicy(s)
				So(err, ShouldBeNil)
			}
		})

		Convey("And unknown policies are rejected", func() {
			_, err := rules.ParseTierPolicy("narrowest")
			So(errors.Is(err, rules.ErrUnknownTierPolicy), ShouldBeTrue)

			_, err = rules.ParseBonusPolicy("avg")
			So(errors.Is(err, rules.ErrUnknownBonusPolicy), ShouldBeTrue)
		})
	})
}
