// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"math"

	"github.com/jeranaias/querydesk-tui/internal/model"
)

// axisSteps is the target number of intervals on the value axis.
const axisSteps = 4

func (r *Renderer) chart(c model.Chart) *ChartView {
	view := &ChartView{Bars: make([]Bar, 0, len(c.Points))}

	lo, hi := 0.0, 0.0
	for _, p := range c.Points {
		view.Bars = append(view.Bars, Bar{
			Label:   p.Name,
			Value:   p.Value,
			Compact: Compact(p.Value),
			Exact:   r.FormatNumber(p.Value),
		})
		if !isFinite(p.Value) {
			continue
		}
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}

	view.Ticks = axisTicks(lo, hi, axisSteps)
	view.Min = view.Ticks[0].Value
	view.Max = view.Ticks[len(view.Ticks)-1].Value
	return view
}

// axisTicks returns evenly spaced, rounded ticks covering [lo, hi].
func axisTicks(lo, hi float64, steps int) []Tick {
	if hi <= lo {
		hi = lo + 1
	}
	step := niceStep((hi - lo) / float64(steps))
	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step

	// Ranges near the float64 limit cannot be rounded outward.
	if !isFinite(step) || !isFinite(start) || !isFinite(end) || !isFinite(end-start) {
		return []Tick{{Value: lo, Label: Compact(lo)}, {Value: hi, Label: Compact(hi)}}
	}

	n := int(math.Round((end-start)/step)) + 1
	n = min(max(n, 2), steps+3)
	ticks := make([]Tick, 0, n)
	for i := 0; i < n; i++ {
		v := start + float64(i)*step
		if math.Abs(v) < step/1e9 {
			v = 0
		}
		ticks = append(ticks, Tick{Value: v, Label: Compact(v)})
	}
	return ticks
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	f := raw / base

	var nice float64
	switch {
	case f <= 1:
		nice = 1
	case f <= 2:
		nice = 2
	case f <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * base
}
