package rules_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/premia/internal/adapters/tabular"
	"github.com/okian/premia/internal/domain/rules"
)

func TestNormalizeTiers(t *testing.T) {
	Convey("Given a raw tier table with mixed column spellings", t, func() {
		raw := tabular.Table{
			{"Von": "7", "Bis": "999", "€/Punkt": "75"},
			{"von_platz": 3, "bis_platz": 6, "euro pro punkt": "100"},
		}

		Convey("When normalizing", func() {
			table := rules.NormalizeTiers(raw)

			Convey("Then all aliases map onto the canonical columns", func() {
				So(table, ShouldHaveLength, 2)
			})

			Convey("And the result is sorted ascending by (from, to)", func() {
				So(table[0].From, ShouldEqual, 3)
				So(table[0].To, ShouldEqual, 6)
				So(table[0].Value.String(), ShouldEqual, "100")
				So(table[1].From, ShouldEqual, 7)
				So(table[1].To, ShouldEqual, 999)
				So(table[1].Value.String(), ShouldEqual, "75")
			})
		})
	})

	Convey("Given rows that cannot be coerced", t, func() {
		raw := tabular.Table{
			{"von": "1", "bis": "2", "eur_pro_punkt": "75"},
			{"von": "x", "bis": "2", "eur_pro_punkt": "75"},
			{"von": "1", "bis": nil, "eur_pro_punkt": "75"},
			{"von": "1", "bis": "2", "eur_pro_punkt": "abc"},
			{"von": "1", "bis": "2"},
		}

		Convey("Then malformed rows are dropped silently", func() {
			table := rules.NormalizeTiers(raw)
			So(table, ShouldHaveLength, 1)
			So(table[0].Value.String(), ShouldEqual, "75")
		})
	})

	Convey("Given a row with an inverted range", t, func() {
		raw := tabular.Table{
			{"von": "5", "bis": "3", "eur_pro_punkt": "50"},
			{"von": "1", "bis": "2", "eur_pro_punkt": "75"},
		}

		Convey("Then the inverted row is dropped", func() {
			table := rules.NormalizeTiers(raw)
			So(table, ShouldHaveLength, 1)
			So(table[0].From, ShouldEqual, 1)
		})

		Convey("And the advisory counter reports it", func() {
			So(rules.InvertedTierRows(raw), ShouldEqual, 1)
		})
	})

	Convey("Given a completely malformed table", t, func() {
		raw := tabular.Table{
			{"foo": "bar"},
			{"von": "", "bis": "", "eur_pro_punkt": ""},
		}

		Convey("Then normalization degrades to an empty table without error", func() {
			So(rules.NormalizeTiers(raw), ShouldHaveLength, 0)
		})
	})

	Convey("Given decimal cells with a comma separator", t, func() {
		raw := tabular.Table{
			{"von": "1", "bis": "2", "eur_pro_punkt": "12,5"},
		}

		Convey("Then the value parses exactly", func() {
			table := rules.NormalizeTiers(raw)
			So(table, ShouldHaveLength, 1)
			So(table[0].Value.String(), ShouldEqual, "12.5")
		})
	})
}

func TestNormalizeBonuses(t *testing.T) {
	Convey("Given a raw bonus table with the bonus aliases", t, func() {
		raw := tabular.Table{
			{"von": 1, "bis": 2, "Aufstiegsbonus": 500},
			{"von": 1, "bis": 3, "bonus_eur": "250"},
		}

		Convey("When normalizing", func() {
			table := rules.NormalizeBonuses(raw)

			Convey("Then overlapping intervals survive", func() {
				So(table, ShouldHaveLength, 2)
			})

			Convey("And equal from-ranks are ordered by to-rank", func() {
				So(table[0].To, ShouldEqual, 2)
				So(table[1].To, ShouldEqual, 3)
			})
		})
	})
}

func TestNormalizeIdempotence(t *testing.T) {
	Convey("Given an already normalized table", t, func() {
		raw := tabular.Table{
			{"von": "3", "bis": "6", "eur_pro_punkt": "100"},
			{"von": "7", "bis": "999", "eur_pro_punkt": "75"},
		}
		table := rules.NormalizeTiers(raw)

		Convey("When normalizing again", func() {
			again := table.Normalize()

			Convey("Then the table is unchanged", func() {
				So(again, ShouldResemble, table)
			})
		})
	})

	Convey("Given an unsorted typed table", t, func() {
		table := rules.Table{
			{From: 7, To: 999},
			{From: 3, To: 6},
			{From: 5, To: 2},
		}

		Convey("Then Normalize sorts and drops the inverted rule", func() {
			got := table.Normalize()
			So(got, ShouldHaveLength, 2)
			So(got[0].From, ShouldEqual, 3)
			So(got[1].From, ShouldEqual, 7)
		})
	})
}
