// Package chart draws greedy gain profiles and benchmark timings as ASCII
// bar charts without touching stdout or term.GetSize. All state is passed
// in, so layouts are easy to test.
package chart

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hayeah/setcover/internal/metrics"
)

// Options controls layout and I/O behaviour.
type Options struct {
	BarWidth     int        // 0 = auto (35 % of term, at most 30)
	FillRune     rune       // default '█'
	ThresholdPct float64    // gain profile: steps under this share are collapsed
	TermWidth    func() int // injected; must return columns
	Writer       io.Writer  // destination for the chart
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions(termWidthFn func() int, w io.Writer) Options {
	return Options{
		FillRune:     '█',
		ThresholdPct: 1,
		TermWidth:    termWidthFn,
		Writer:       w,
	}
}

// Step is one selection in a gain profile.
type Step struct {
	Label string
	Gain  int
}

// PrintGains charts how much of the universe each selected set covered,
// in selection order, with the running coverage in the percent column.
func PrintGains(steps []Step, universe int, opt Options) error {
	entries := gainEntries(steps, universe)
	entries = collapseTail(entries, universe, opt.ThresholdPct)
	summary := fmt.Sprintf("Summary: %d sets cover %d elements", len(steps), universe)
	return write(opt, layoutChart(entries, strconv.Itoa(universe), summary, opt))
}

// PrintBench charts the mean run time of every recorded series, relative
// to the slowest one.
func PrintBench(rec *metrics.Recorder, opt Options) error {
	if err := rec.Wait(); err != nil {
		return err
	}
	entries, total := benchEntries(rec)
	summary := fmt.Sprintf("Summary: %d series, %d runs", len(entries), total.Runs)
	return write(opt, layoutChart(entries, total.Mean().Round(time.Microsecond).String(), summary, opt))
}

func write(opt Options, lines []string) error {
	for _, ln := range lines {
		if _, err := fmt.Fprintln(opt.Writer, ln); err != nil {
			return err
		}
	}
	return nil
}

// entry is one bar. Weight sizes the bar, Pct and Value are printed.
type entry struct {
	Label  string
	Weight int64
	Value  string
	Pct    float64
}

func gainEntries(steps []Step, universe int) []entry {
	out := make([]entry, 0, len(steps))
	covered := 0
	for _, s := range steps {
		covered += s.Gain
		out = append(out, entry{
			Label:  s.Label,
			Weight: int64(s.Gain),
			Value:  strconv.Itoa(s.Gain),
			Pct:    pct(int64(covered), int64(universe)),
		})
	}
	return out
}

// collapseTail merges the trailing steps that each cover less than
// thresholdPct of the universe into one bucket. Greedy gains never increase,
// so the small steps are always a suffix.
func collapseTail(entries []entry, universe int, thresholdPct float64) []entry {
	cut := len(entries)
	for cut > 0 && pct(entries[cut-1].Weight, int64(universe)) < thresholdPct {
		cut--
	}
	if len(entries)-cut < 2 {
		return entries
	}

	var sum int64
	for _, e := range entries[cut:] {
		sum += e.Weight
	}
	tail := entry{
		Label:  fmt.Sprintf("+%d more", len(entries)-cut),
		Weight: sum,
		Value:  strconv.FormatInt(sum, 10),
		Pct:    entries[len(entries)-1].Pct,
	}
	return append(entries[:cut:cut], tail)
}

func benchEntries(rec *metrics.Recorder) ([]entry, metrics.MetricItem) {
	keys := make([]metrics.MetricKey, 0, len(rec.Items))
	var (
		slowest int64
		total   metrics.MetricItem
	)
	for k, v := range rec.Items {
		keys = append(keys, k)
		slowest = max(slowest, int64(v.Mean()))
		total.Runs += v.Runs
		total.TotalNanos += v.TotalNanos
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Key != keys[j].Key {
			return keys[i].Key < keys[j].Key
		}
		return keys[i].Type < keys[j].Type
	})

	out := make([]entry, 0, len(keys))
	for _, k := range keys {
		mean := rec.Items[k].Mean()
		out = append(out, entry{
			Label:  k.String(),
			Weight: int64(mean),
			Value:  mean.Round(time.Microsecond).String(),
			Pct:    pct(int64(mean), slowest),
		})
	}
	return out, total
}

func layoutChart(entries []entry, total, summary string, opt Options) []string {
	if len(entries) == 0 {
		return []string{"Nothing recorded"}
	}
	const pctW, gapW = 6, 2

	valueW := len(total)
	for _, e := range entries {
		valueW = max(valueW, len(e.Value))
	}

	barW := opt.BarWidth
	if barW <= 0 {
		barW = int(float64(opt.TermWidth()) * 0.35)
		barW = min(barW, 30)
	}
	keyW := opt.TermWidth() - (barW + pctW + valueW + gapW*3)
	if keyW < 8 {
		keyW = 8
	}

	var maxWeight int64
	for _, e := range entries {
		maxWeight = max(maxWeight, e.Weight)
	}

	trim := func(s string, max int) string {
		r := []rune(s)
		if len(r) <= max {
			return s
		}
		return "…" + string(r[len(r)-max+1:])
	}

	fillRune := opt.FillRune
	if fillRune == 0 {
		fillRune = '█'
	}
	fill := string(fillRune)
	sep := strings.Repeat("─", barW)
	var lines []string

	for _, e := range entries {
		barLen := 0
		if maxWeight > 0 {
			barLen = int(float64(e.Weight)/float64(maxWeight)*float64(barW) + 0.5)
		}
		if barLen == 0 && e.Weight > 0 {
			barLen = 1
		}
		bar := strings.Repeat(fill, barLen) + strings.Repeat(" ", barW-barLen)
		lines = append(lines, fmt.Sprintf("%s  %5.1f%%  %*s  %s",
			bar, e.Pct, valueW, e.Value, trim(e.Label, keyW)))
	}

	lines = append(lines, fmt.Sprintf("%s  %5.1f%%  %*s  %s",
		sep, 100.0, valueW, total, "TOTAL"))
	lines = append(lines, "\n"+summary)

	return lines
}

func pct(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
