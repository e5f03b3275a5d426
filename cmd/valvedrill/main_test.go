package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/valvedrill/internal/keysig"
	"github.com/verte-zerg/valvedrill/internal/model"
	"github.com/verte-zerg/valvedrill/internal/pitch"
	"github.com/verte-zerg/valvedrill/internal/sampler"
)

func validConfig() model.Config {
	return model.Config{
		Key:          "Bb",
		Range:        "novice",
		Duration:     time.Minute,
		CaptureDelay: 250 * time.Millisecond,
		WeakTop:      5,
		WeakFactor:   2,
		WeakWindow:   20,
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	cases := map[string]func(*model.Config){
		"zero duration":      func(c *model.Config) { c.Duration = 0 },
		"zero capture delay": func(c *model.Config) { c.CaptureDelay = 0 },
		"delay too long":     func(c *model.Config) { c.CaptureDelay = 2 * time.Minute },
		"negative weak top":  func(c *model.Config) { c.WeakTop = -1 },
		"negative factor":    func(c *model.Config) { c.WeakFactor = -0.5 },
		"negative window":    func(c *model.Config) { c.WeakWindow = -1 },
	}
	for name, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestBuildEngineFailsFast(t *testing.T) {
	cfg := validConfig()
	if _, err := buildEngine(cfg, sampler.NewWithSeed(1)); err != nil {
		t.Fatalf("expected engine, got %v", err)
	}

	cfg.Key = "H"
	_, err := buildEngine(cfg, sampler.NewWithSeed(1))
	if !errors.Is(err, keysig.ErrInvalidKey) || !isConfigError(err) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}

	cfg = validConfig()
	cfg.Range = "expert"
	_, err = buildEngine(cfg, sampler.NewWithSeed(1))
	if !errors.Is(err, sampler.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	cfg = validConfig()
	cfg.Range = "H2-Bb3"
	_, err = buildEngine(cfg, sampler.NewWithSeed(1))
	if !errors.Is(err, pitch.ErrInvalidNote) || !isConfigError(err) {
		t.Fatalf("expected the note error to survive wrapping, got %v", err)
	}

	cfg = validConfig()
	cfg.Range = "C2-Bb3"
	if _, err := buildEngine(cfg, sampler.NewWithSeed(1)); !errors.Is(err, sampler.ErrInvalidRange) {
		t.Fatalf("expected range outside the chart to fail, got %v", err)
	}

	cfg = validConfig()
	cfg.Key = "C#"
	cfg.Range = "D3-D3"
	if _, err := buildEngine(cfg, sampler.NewWithSeed(1)); !errors.Is(err, sampler.ErrNoEligibleNotes) {
		t.Fatalf("expected ErrNoEligibleNotes, got %v", err)
	}
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var key string
	var delay time.Duration
	cmd.Flags().StringVar(&key, "key", "Bb", "")
	cmd.Flags().DurationVar(&delay, "capture-delay", time.Second, "")

	fileKey := "F"
	applyStringConfig(cmd, "key", &key, &fileKey)
	if key != "F" {
		t.Fatalf("config should apply when the flag is unset, got %q", key)
	}
	if err := cmd.Flags().Set("key", "Eb"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	key = "Eb"
	applyStringConfig(cmd, "key", &key, &fileKey)
	if key != "Eb" {
		t.Fatalf("flag should win over config, got %q", key)
	}

	fileDelay := "300ms"
	if err := applyDurationConfig(cmd, "capture-delay", &delay, &fileDelay); err != nil {
		t.Fatalf("apply duration: %v", err)
	}
	if delay != 300*time.Millisecond {
		t.Fatalf("unexpected delay %s", delay)
	}
	bad := "soon"
	if err := applyDurationConfig(cmd, "capture-delay", &delay, &bad); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestKeysCommandListsScales(t *testing.T) {
	var buf bytes.Buffer
	if err := writeKeys(&buf); err != nil {
		t.Fatalf("write keys: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(keysig.Names()) {
		t.Fatalf("expected %d lines, got %d", len(keysig.Names()), len(lines))
	}
	found := false
	for _, line := range lines {
		if strings.HasPrefix(line, "Bb ") {
			found = true
			if !strings.Contains(line, "flats") || !strings.Contains(line, "Bb C D Eb F G A") {
				t.Fatalf("unexpected Bb line %q", line)
			}
		}
	}
	if !found {
		t.Fatalf("Bb missing from keys output")
	}
}

func TestChartAndRangesCommands(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"chart", "--format", "yaml", "--key", "Bb"})
	if err := root.Execute(); err != nil {
		t.Fatalf("chart: %v", err)
	}
	if !strings.Contains(buf.String(), "Bb2") {
		t.Fatalf("expected flat spelling in chart:\n%s", buf.String())
	}

	root = newRootCmd()
	buf.Reset()
	root.SetOut(&buf)
	root.SetArgs([]string{"ranges"})
	if err := root.Execute(); err != nil {
		t.Fatalf("ranges: %v", err)
	}
	want := "novice        " + pitch.Pitch(34).Name(pitch.Flat) + "-" + pitch.Pitch(46).Name(pitch.Flat)
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("expected %q in:\n%s", want, buf.String())
	}
}
