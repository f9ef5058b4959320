package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/premia/internal/config"
)

func TestNew(t *testing.T) {
	convey.Convey("Given default configuration", t, func() {
		cfg := config.New()

		convey.Convey("Then the defaults are sensible", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.BaseRate, convey.ShouldEqual, 50)
			convey.So(cfg.TierPolicy, convey.ShouldEqual, "first")
			convey.So(cfg.BonusPolicy, convey.ShouldEqual, "first")
			convey.So(cfg.MaxUploadBytes, convey.ShouldEqual, 1<<20)
			convey.So(cfg.MaxTableRows, convey.ShouldEqual, 5000)
		})
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given no file and no environment overrides", t, func() {
		cfg, err := config.Load(ctx)

		convey.Convey("Then the defaults come back", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.BaseRate, convey.ShouldEqual, 50)
		})
	})

	convey.Convey("Given environment overrides", t, func() {
		t.Setenv("PREMIA_ADDR", ":7070")
		t.Setenv("PREMIA_BASE_RATE", "25")
		t.Setenv("PREMIA_BONUS_POLICY", "sum")

		cfg, err := config.Load(ctx)

		convey.Convey("Then they win over the defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			convey.So(cfg.BaseRate, convey.ShouldEqual, 25)
			convey.So(cfg.BonusPolicy, convey.ShouldEqual, "sum")
		})
	})

	convey.Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "premia.yaml")
		content := "addr: \":6060\"\ntier_policy: max_range\n"
		convey.So(os.WriteFile(path, []byte(content), 0o600), convey.ShouldBeNil)
		t.Setenv("PREMIA_CONFIG", path)

		convey.Convey("When no env overrides compete", func() {
			// t.Setenv cleanups only run when the whole test ends, so the
			// overrides from the previous Convey block are still set here.
			convey.So(os.Unsetenv("PREMIA_ADDR"), convey.ShouldBeNil)
			convey.So(os.Unsetenv("PREMIA_BASE_RATE"), convey.ShouldBeNil)
			convey.So(os.Unsetenv("PREMIA_BONUS_POLICY"), convey.ShouldBeNil)

			cfg, err := config.Load(ctx)

			convey.Convey("Then the file values apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.TierPolicy, convey.ShouldEqual, "max_range")
			})
		})

		convey.Convey("When an env var overrides the file", func() {
			t.Setenv("PREMIA_ADDR", ":5050")
			cfg, err := config.Load(ctx)

			convey.Convey("Then the env var wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":5050")
			})
		})
	})

	convey.Convey("Given invalid values", t, func() {
		convey.Convey("Then a bad tier policy is rejected", func() {
			t.Setenv("PREMIA_TIER_POLICY", "narrowest")
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("And a negative base rate is rejected", func() {
			t.Setenv("PREMIA_TIER_POLICY", "first")
			t.Setenv("PREMIA_BASE_RATE", "-1")
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("And a missing config file fails loading", func() {
			t.Setenv("PREMIA_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})
	})
}
