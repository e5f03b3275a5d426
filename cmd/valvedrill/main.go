// Package main provides the CLI entrypoint for valvedrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/valvedrill/internal/config"
	"github.com/verte-zerg/valvedrill/internal/drill"
	"github.com/verte-zerg/valvedrill/internal/fingering"
	"github.com/verte-zerg/valvedrill/internal/keysig"
	"github.com/verte-zerg/valvedrill/internal/logging"
	"github.com/verte-zerg/valvedrill/internal/midiin"
	"github.com/verte-zerg/valvedrill/internal/model"
	"github.com/verte-zerg/valvedrill/internal/pitch"
	"github.com/verte-zerg/valvedrill/internal/sampler"
	"github.com/verte-zerg/valvedrill/internal/stats"
	"github.com/verte-zerg/valvedrill/internal/store"
	"github.com/verte-zerg/valvedrill/internal/tone"
	"github.com/verte-zerg/valvedrill/internal/tui"
)

const (
	defaultKey         = "Bb"
	defaultRange       = "novice"
	defaultWeakTop     = 5
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 10
	defaultMIDIBase    = int(midiin.DefaultBase)
)

var (
	drillKey          string
	drillRange        string
	drillDuration     time.Duration
	drillCaptureDelay time.Duration
	drillFocusWeak    bool
	drillWeakTop      int
	drillWeakFactor   float64
	drillWeakWindow   int
	drillMIDIIn       string
	drillMIDIBase     int
	drillSound        bool
	verbose           bool

	statsKey         string
	statsRange       string
	statsSince       string
	statsLast        int
	statsCurveWindow int

	chartFormat string
	chartKey    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if isConfigError(err) {
			logErrf("See: valvedrill keys, valvedrill ranges\n")
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "valvedrill",
		Short:         "Terminal valve fingering drill",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDrillCmd,
	}

	rootCmd.Flags().StringVar(&drillKey, "key", defaultKey, "key signature or 'chromatic' (see: valvedrill keys)")
	rootCmd.Flags().StringVar(&drillRange, "range", defaultRange, "range preset or LOW-HIGH such as F2-Bb3 (see: valvedrill ranges)")
	rootCmd.Flags().DurationVar(&drillDuration, "duration", drill.SessionLength, "session length")
	rootCmd.Flags().DurationVar(&drillCaptureDelay, "capture-delay", drill.CaptureDelay, "time to collect a chord after the first press")
	rootCmd.Flags().BoolVar(&drillFocusWeak, "focus-weak", false, "bias notes toward recently missed ones")
	rootCmd.Flags().IntVar(&drillWeakTop, "weak-top", defaultWeakTop, "number of weak notes to focus on")
	rootCmd.Flags().Float64Var(&drillWeakFactor, "weak-factor", defaultWeakFactor, "extra weight for weak notes")
	rootCmd.Flags().IntVar(&drillWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak notes")
	rootCmd.Flags().StringVar(&drillMIDIIn, "midi-in", "", "MIDI input port name to read valves from")
	rootCmd.Flags().IntVar(&drillMIDIBase, "midi-base", defaultMIDIBase, "MIDI note mapped to valve 0; the next four notes map to valves 1-4")
	rootCmd.Flags().BoolVar(&drillSound, "sound", true, "play feedback tones")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newKeysCmd())
	rootCmd.AddCommand(newRangesCmd())
	rootCmd.AddCommand(newChartCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "key", &drillKey, fileCfg.Drill.Key)
	applyStringConfig(cmd, "range", &drillRange, fileCfg.Drill.Range)
	if err := applyDurationConfig(cmd, "duration", &drillDuration, fileCfg.Drill.Duration); err != nil {
		return err
	}
	if err := applyDurationConfig(cmd, "capture-delay", &drillCaptureDelay, fileCfg.Drill.CaptureDelay); err != nil {
		return err
	}
	applyBoolConfig(cmd, "focus-weak", &drillFocusWeak, fileCfg.Drill.FocusWeak)
	applyIntConfig(cmd, "weak-top", &drillWeakTop, fileCfg.Drill.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &drillWeakFactor, fileCfg.Drill.WeakFactor)
	applyIntConfig(cmd, "weak-window", &drillWeakWindow, fileCfg.Drill.WeakWindow)
	applyStringConfig(cmd, "midi-in", &drillMIDIIn, fileCfg.Drill.MIDIIn)
	applyBoolConfig(cmd, "sound", &drillSound, fileCfg.Drill.Sound)

	cfg := model.Config{
		Key:          drillKey,
		Range:        drillRange,
		Duration:     drillDuration,
		CaptureDelay: drillCaptureDelay,
		FocusWeak:    drillFocusWeak,
		WeakTop:      drillWeakTop,
		WeakFactor:   drillWeakFactor,
		WeakWindow:   drillWeakWindow,
		MIDIIn:       drillMIDIIn,
		Sound:        drillSound,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if drillMIDIBase < 0 || drillMIDIBase > 127-4 {
		return fmt.Errorf("--midi-base must be between 0 and 123")
	}

	engine, err := buildEngine(cfg, sampler.New())
	if err != nil {
		return err
	}

	closeLog, err := logging.Setup(config.DefaultLogPath(), verbose)
	if err != nil {
		logErrf("logging to stderr: %v\n", err)
	}
	defer closeLog()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logrus.WithError(cerr).Warn("failed to close db")
		}
	}()

	player := openPlayer(cfg.Sound)
	defer func() {
		if cerr := player.Close(); cerr != nil {
			logrus.WithError(cerr).Warn("failed to close audio")
		}
	}()

	m := tui.NewModel(cfg, engine, st, player)
	program := tea.NewProgram(m, tea.WithAltScreen())

	if cfg.MIDIIn != "" {
		mapper := midiin.Mapper{Base: uint8(drillMIDIBase)}
		stop, err := midiin.Listen(cfg.MIDIIn, mapper, func(v fingering.Valve) {
			program.Send(tui.ValveMsg{Valve: v})
		})
		if err != nil {
			return err
		}
		defer stop()
	}

	logrus.WithFields(logrus.Fields{
		"key":   engine.Key().Name,
		"range": engine.Range().String(),
	}).Info("drill started")
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildEngine resolves the key and range names and checks that at least
// one note can be drawn.
func buildEngine(cfg model.Config, s *sampler.Sampler) (*drill.Engine, error) {
	key, err := keysig.Parse(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve --key: %w", err)
	}
	rng, err := sampler.ParseRange(cfg.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve --range: %w", err)
	}
	engine, err := drill.NewEngine(key, rng, s)
	if err != nil {
		return nil, fmt.Errorf("failed to set up drill: %w", err)
	}
	return engine, nil
}

func openPlayer(sound bool) tone.Player {
	if !sound {
		return tone.Silent{}
	}
	player, err := tone.NewPlayer()
	if err != nil {
		logrus.WithError(err).Warn("audio unavailable; continuing without sound")
		return tone.Silent{}
	}
	return player
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List key signatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeKeys(cmd.OutOrStdout())
		},
	}
}

func writeKeys(w io.Writer) error {
	for _, name := range keysig.Names() {
		key, err := keysig.Parse(name)
		if err != nil {
			return err
		}
		acc := key.Preference()
		classes := key.Classes()
		if !key.Chromatic {
			classes = keysig.Diatonic(key.Tonic)
		}
		names := make([]string, 0, len(classes))
		for _, c := range classes {
			names = append(names, pitch.Spell(c, acc))
		}
		if _, err := fmt.Fprintf(w, "%-10s %-6s %s\n", name, acc, strings.Join(names, " ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newRangesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ranges",
		Short: "List range presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, r := range sampler.Presets() {
				bounds := fmt.Sprintf("%s-%s", r.Low.Name(pitch.Flat), r.High.Name(pitch.Flat))
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s\n", r.Name, bounds); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			return nil
		},
	}
}

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the fingering chart",
		Args:  cobra.NoArgs,
		RunE:  runChartCmd,
	}
	cmd.Flags().StringVar(&chartFormat, "format", "text", "output format: text or yaml")
	cmd.Flags().StringVar(&chartKey, "key", "", "spell notes for this key (default: sharps)")
	return cmd
}

func runChartCmd(cmd *cobra.Command, _ []string) error {
	acc := pitch.Sharp
	if chartKey != "" {
		key, err := keysig.Parse(chartKey)
		if err != nil {
			return fmt.Errorf("failed to resolve --key: %w", err)
		}
		acc = key.Preference()
	}
	switch chartFormat {
	case "text":
		return fingering.WriteChartText(cmd.OutOrStdout(), acc)
	case "yaml":
		return fingering.WriteChartYAML(cmd.OutOrStdout(), acc)
	default:
		return fmt.Errorf("--format must be text or yaml, got %q", chartFormat)
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsKey, "key", "", "key filter")
	cmd.Flags().StringVar(&statsRange, "range", "", "range filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildStatsConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return report.Render(cmd.OutOrStdout(), cfg)
}

func buildStatsConfig() (model.StatsConfig, error) {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	cfg := model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}
	if statsKey != "" {
		key, err := keysig.Parse(statsKey)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("failed to resolve --key: %w", err)
		}
		cfg.Key = key.Name
	}
	if statsRange != "" {
		rng, err := sampler.ParseRange(statsRange)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("failed to resolve --range: %w", err)
		}
		cfg.Range = rng.Label()
	}
	return cfg, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	parsed, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = parsed
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# valvedrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[drill]
# key = %q                # Key signature or "chromatic"
# range = %q          # Preset (novice, intermediate, advanced, low, mid, high, full) or LOW-HIGH
# duration = %q            # Session length
# capture-delay = %q    # Time to collect a chord after the first press
# focus-weak = false        # Bias notes toward recently missed ones
# weak-top = %d             # Number of weak notes to focus on
# weak-factor = %.1f        # Extra weight for weak notes
# weak-window = %d         # Number of recent sessions to compute weak notes
# midi-in = ""              # MIDI input port name
# sound = true              # Play feedback tones
`,
		defaultKey,
		defaultRange,
		drill.SessionLength.String(),
		drill.CaptureDelay.String(),
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if cfg.CaptureDelay <= 0 {
		return fmt.Errorf("--capture-delay must be > 0")
	}
	if cfg.CaptureDelay >= cfg.Duration {
		return fmt.Errorf("--capture-delay must be shorter than --duration")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

// isConfigError reports whether err came from an unknown key or range.
func isConfigError(err error) bool {
	return errors.Is(err, keysig.ErrInvalidKey) || errors.Is(err, sampler.ErrInvalidRange) || errors.Is(err, pitch.ErrInvalidNote)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
