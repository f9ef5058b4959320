package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/okian/premia/internal/adapters/export"
	"github.com/okian/premia/internal/domain/model"
	"github.com/okian/premia/internal/domain/types"
)

func sampleResults() []types.ScenarioResult {
	return []types.ScenarioResult{
		{
			Rank:   1,
			Points: decimal.NewFromInt(73),
			Rate:   decimal.NewFromInt(75),
			Bonus:  decimal.NewFromInt(2500),
			Total:  decimal.NewFromInt(7975),
		},
		{
			Rank:   11,
			Points: decimal.NewFromInt(31),
			Rate:   decimal.NewFromInt(25),
			Bonus:  decimal.Zero,
			Total:  decimal.NewFromInt(775),
		},
	}
}

func TestWriteResultsCSV(t *testing.T) {
	Convey("Given a result batch", t, func() {
		var buf bytes.Buffer
		err := export.WriteResultsCSV(&buf, sampleResults())
		So(err, ShouldBeNil)
		out := buf.String()

		Convey("Then the file starts with a UTF-8 BOM", func() {
			So(strings.HasPrefix(out, "\xEF\xBB\xBF"), ShouldBeTrue)
		})

		Convey("And the header and rows are semicolon-separated", func() {
			lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\xEF\xBB\xBF")), "\n")
			So(lines, ShouldHaveLength, 3)
			So(lines[0], ShouldEqual, "platz;punkte;eur_pro_punkt;bonus_eur;gesamt_eur")
			So(lines[1], ShouldEqual, "1;73;75;2500;7975")
			So(lines[2], ShouldEqual, "11;31;25;0;775")
		})
	})

	Convey("Given an empty batch", t, func() {
		var buf bytes.Buffer
		So(export.WriteResultsCSV(&buf, nil), ShouldBeNil)

		Convey("Then only the BOM and header are written", func() {
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(lines, ShouldHaveLength, 1)
		})
	})
}

func TestWriteWorkbook(t *testing.T) {
	Convey("Given a session and its results", t, func() {
		session := model.DefaultSession()
		results := sampleResults()
		summary := types.Summarize(results)

		var buf bytes.Buffer
		err := export.WriteWorkbook(&buf, session, results, summary)
		So(err, ShouldBeNil)

		f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
		So(err, ShouldBeNil)
		defer f.Close()

		Convey("Then the workbook has the config and results sheets only", func() {
			sheets := f.GetSheetList()
			So(sheets, ShouldContain, "Konfiguration")
			So(sheets, ShouldContain, "Ergebnisse")
			So(sheets, ShouldNotContain, "Sheet1")
		})

		Convey("And the config sheet carries the base rate", func() {
			v, err := f.GetCellValue("Konfiguration", "B1")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, session.BaseRate.String())
		})

		Convey("And the results sheet carries the computed rows", func() {
			rows, err := f.GetRows("Ergebnisse")
			So(err, ShouldBeNil)
			So(rows[0][0], ShouldEqual, "platz")
			So(rows[1][4], ShouldEqual, "7975")
			So(rows[2][4], ShouldEqual, "775")
		})
	})
}
