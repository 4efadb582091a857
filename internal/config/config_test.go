package config_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-quoteform/internal/config"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("quoteform-cli", pflag.ContinueOnError)
	config.Flags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := config.Config{
		Mode:       config.ModeTUI,
		Form:       "request",
		Format:     "json",
		APITitle:   "Glulam quote forms",
		APIVersion: "1.0.0",
		Log:        config.Log{Level: "info", Format: "text"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileThenFlags(t *testing.T) {
	cfg, err := config.Load(newFlags(t, "--config", "testdata/quoteform.yaml", "--form", "glulam"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != config.ModeHTML || cfg.Action != "/quotes" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Form != "glulam" {
		t.Fatalf("flag should override file, form = %q", cfg.Form)
	}
	if diff := cmp.Diff(config.Log{Level: "warn", Format: "json"}, cfg.Log); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("QUOTEFORM_LOG_LEVEL", "debug")
	t.Setenv("QUOTEFORM_FORM", "project")

	cfg, err := config.LoadBytes("yaml", []byte("form: customer\nlog:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Form != "project" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]struct {
		load func() (config.Config, error)
		want error
	}{
		"unknown mode": {
			load: func() (config.Config, error) { return config.LoadBytes("yaml", []byte("mode: gui\n")) },
			want: config.ErrInvalidMode,
		},
		"validate without input": {
			load: func() (config.Config, error) { return config.Load(newFlags(t, "--mode", "validate")) },
			want: config.ErrMissingInput,
		},
		"bad log format": {
			load: func() (config.Config, error) { return config.Load(newFlags(t, "--log-format", "xml")) },
			want: config.ErrInvalidLogFormat,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := tc.load(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := config.LoadBytes("", nil); err == nil {
		t.Fatalf("missing config type should fail")
	}
	if _, err := config.Load(newFlags(t, "--config", "testdata/missing.yaml")); err == nil {
		t.Fatalf("missing config file should fail")
	}
}
