package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := FromEnv(env(nil))
	is.NoErr(err)
	is.Equal(*cfg, Config{
		Product:     DefaultProduct,
		Schedule:    DefaultSchedule,
		Workers:     DefaultWorkers,
		ShopDelay:   DefaultShopDelay,
		Rate:        0,
		MetricsAddr: DefaultMetricsAddr,
		LogLevel:    zerolog.InfoLevel,
	})
}

func TestOverrides(t *testing.T) {
	is := is.New(t)

	cfg, err := FromEnv(env(map[string]string{
		"PRICEWATCH_PRODUCT":    "laptop",
		"PRICEWATCH_SCHEDULE":   "@every 30s",
		"PRICEWATCH_WORKERS":    "2",
		"PRICEWATCH_SHOP_DELAY": "250ms",
		"PRICEWATCH_RATE":       "1.5",
		"METRICS_ADDR":          "127.0.0.1:9100",
		"LOG_LEVEL":             "debug",
	}))
	is.NoErr(err)
	is.Equal(cfg.Product, "laptop")
	is.Equal(cfg.Schedule, "@every 30s")
	is.Equal(cfg.Workers, 2)
	is.Equal(cfg.ShopDelay, 250*time.Millisecond)
	is.Equal(cfg.Rate, 1.5)
	is.Equal(cfg.MetricsAddr, "127.0.0.1:9100")
	is.Equal(cfg.LogLevel, zerolog.DebugLevel)
}

func TestInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"workers not a number": {"PRICEWATCH_WORKERS": "four"},
		"zero workers":         {"PRICEWATCH_WORKERS": "0"},
		"bad delay":            {"PRICEWATCH_SHOP_DELAY": "soon"},
		"negative delay":       {"PRICEWATCH_SHOP_DELAY": "-1s"},
		"bad rate":             {"PRICEWATCH_RATE": "fast"},
		"negative rate":        {"PRICEWATCH_RATE": "-2"},
		"bad schedule":         {"PRICEWATCH_SCHEDULE": "every minute"},
		"short product":        {"PRICEWATCH_PRODUCT": "x"},
		"bad log level":        {"LOG_LEVEL": "loud"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			_, err := FromEnv(env(vars))
			is.True(lerrors.IsValidationError(err))
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "test.env")
	is.NoErr(os.WriteFile(path, []byte("PRICEWATCH_PRODUCT=tablet\nPRICEWATCH_WORKERS=3\n"), 0o600))

	// Variables already in the environment win over the file.
	t.Setenv("PRICEWATCH_WORKERS", "5")
	t.Setenv("PRICEWATCH_PRODUCT", "")
	os.Unsetenv("PRICEWATCH_PRODUCT")

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.Product, "tablet")
	is.Equal(cfg.Workers, 5)
}

func TestLoadMissingFile(t *testing.T) {
	is := is.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	is.True(err != nil)
}

// inDir runs the rest of the test with dir as the working directory.
func inDir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadWithoutDotEnv(t *testing.T) {
	is := is.New(t)
	inDir(t, t.TempDir())

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Product, DefaultProduct)
}

func TestLoadRejectsMalformedDotEnv(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, ".env"), []byte("PRICEWATCH_WORKERS=2\nBAD-KEY=1\n"), 0o600))
	inDir(t, dir)

	_, err := Load()
	is.True(err != nil)
	is.True(!errors.Is(err, fs.ErrNotExist))
}
