package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aoideee/bookshelf/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"BOOKS_CONFIG",
	"BOOKS_PORT",
	"BOOKS_ENV",
	"BOOKS_LOG_LEVEL",
	"BOOKS_DB_DRIVER",
	"BOOKS_DB_DSN",
	"BOOKS_DB_MAX_IDLE_TIME",
	"BOOKS_LIMITER_ENABLED",
	"BOOKS_LIMITER_RPS",
	"BOOKS_LIMITER_BURST",
}

// clearConfigEnv unsets every BOOKS_ variable for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		if value, ok := os.LookupEnv(key); ok {
			_ = os.Unsetenv(key)
			t.Cleanup(func() { _ = os.Setenv(key, value) })
		}
	}
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	convey.Convey("Given no file and no environment overrides", t, func() {
		cfg, err := config.Load(context.Background(), "")

		convey.Convey("Then the defaults are used", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Port, convey.ShouldEqual, 5000)
			convey.So(cfg.Env, convey.ShouldEqual, "development")
			convey.So(cfg.DBDriver, convey.ShouldEqual, "sqlite")
			convey.So(cfg.DBDSN, convey.ShouldEqual, "books.db")
			convey.So(cfg.DBMaxIdleTime, convey.ShouldEqual, 15*time.Minute)
			convey.So(cfg.LimiterEnabled, convey.ShouldBeFalse)
			convey.So(cfg.LimiterRPS, convey.ShouldEqual, 10)
			convey.So(cfg.LimiterBurst, convey.ShouldEqual, 20)
		})
	})
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("BOOKS_PORT", "8081")
	t.Setenv("BOOKS_DB_DSN", "/tmp/other.db")
	t.Setenv("BOOKS_DB_MAX_IDLE_TIME", "1m")
	t.Setenv("BOOKS_LIMITER_ENABLED", "true")

	convey.Convey("Given BOOKS_ environment variables", t, func() {
		cfg, err := config.Load(context.Background(), "")

		convey.Convey("Then they override the defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Port, convey.ShouldEqual, 8081)
			convey.So(cfg.DBDSN, convey.ShouldEqual, "/tmp/other.db")
			convey.So(cfg.DBMaxIdleTime, convey.ShouldEqual, time.Minute)
			convey.So(cfg.LimiterEnabled, convey.ShouldBeTrue)
		})
	})
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	clearConfigEnv(t)
	path := writeTempFile(t, t.TempDir(), "books.yaml", `
port: 9090
env: staging
log_level: debug
limiter_rps: 10
limiter_burst: 20
`)
	t.Setenv("BOOKS_PORT", "7070")

	convey.Convey("Given a YAML file and an environment override", t, func() {
		cfg, err := config.Load(context.Background(), path)

		convey.Convey("Then the environment wins over the file", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Port, convey.ShouldEqual, 7070)
			convey.So(cfg.Env, convey.ShouldEqual, "staging")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			convey.So(cfg.LimiterRPS, convey.ShouldEqual, 10)
			convey.So(cfg.LimiterBurst, convey.ShouldEqual, 20)
		})
	})
}

func TestLoad_ConfigPathFromEnvironment(t *testing.T) {
	clearConfigEnv(t)
	path := writeTempFile(t, t.TempDir(), "books.yaml", "env: production\n")
	t.Setenv("BOOKS_CONFIG", path)

	cfg, err := config.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "production" {
		t.Fatalf("env = %q", cfg.Env)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	writeTempFile(t, dir, ".env", "BOOKS_LOG_LEVEL=warn\n")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() { _ = os.Unsetenv("BOOKS_LOG_LEVEL") })

	cfg, err := config.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearConfigEnv(t)

	convey.Convey("Given invalid configuration sources", t, func() {
		convey.Convey("When the file does not exist", func() {
			_, err := config.Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the driver is unknown", func() {
			path := writeTempFile(t, t.TempDir(), "bad.yaml", "db_driver: oracle\n")
			_, err := config.Load(context.Background(), path)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the port is out of range", func() {
			path := writeTempFile(t, t.TempDir(), "bad.yaml", "port: 70000\n")
			_, err := config.Load(context.Background(), path)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given the default config", t, func() {
		cfg := config.New()
		convey.So(cfg.Validate(), convey.ShouldBeNil)

		convey.Convey("An empty DSN is rejected", func() {
			cfg.DBDSN = "  "
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("A zero burst is rejected only when the limiter is on", func() {
			cfg.LimiterBurst = 0
			convey.So(cfg.Validate(), convey.ShouldBeNil)
			cfg.LimiterEnabled = true
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An unknown log level is rejected", func() {
			cfg.LogLevel = "loud"
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			convey.So(cfg.SlogLevel().String(), convey.ShouldEqual, "INFO")
		})
	})
}
