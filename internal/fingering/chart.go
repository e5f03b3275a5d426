package fingering

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/valvedrill/internal/pitch"
)

// ChartEntry is one row of the fingering chart.
type ChartEntry struct {
	Pitch     int    `yaml:"pitch"`
	Name      string `yaml:"name"`
	Frequency string `yaml:"frequency"`
	Valves    []int  `yaml:"valves"`
}

// Chart lists the table in ascending pitch order, spelled with acc.
func Chart(acc pitch.Accidental) []ChartEntry {
	out := make([]ChartEntry, 0, int(High-Low)+1)
	for p := Low; p <= High; p++ {
		f := table[p]
		valves := make([]int, 0, len(f))
		for _, v := range f {
			valves = append(valves, int(v))
		}
		out = append(out, ChartEntry{
			Pitch:     int(p),
			Name:      p.Name(acc),
			Frequency: fmt.Sprintf("%.2f", p.Frequency()),
			Valves:    valves,
		})
	}
	return out
}

// WriteChartYAML encodes the chart as a YAML sequence.
func WriteChartYAML(w io.Writer, acc pitch.Accidental) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Chart(acc)); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return enc.Close()
}

// WriteChartText prints one "name  valves" line per pitch.
func WriteChartText(w io.Writer, acc pitch.Accidental) error {
	for _, e := range Chart(acc) {
		f := table[pitch.Pitch(e.Pitch)]
		if _, err := fmt.Fprintf(w, "%-4s %3d  %8s Hz  %s\n", e.Name, e.Pitch, e.Frequency, f); err != nil {
			return err
		}
	}
	return nil
}
