// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/number"
)

// FormatNumber writes v with the locale's grouping separators, e.g. 1,200,000.
func (r *Renderer) FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return r.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// FormatNumber formats v with US English grouping.
func FormatNumber(v float64) string {
	return defaultRenderer.FormatNumber(v)
}

var siOrder = []string{"", "k", "M", "G", "T", "P", "E", "Z", "Y"}

// compactSuffix maps SI prefixes to the short-scale suffixes used on axes.
var compactSuffix = map[string]string{
	"":  "",
	"k": "K",
	"M": "M",
	"G": "B",
	"T": "T",
}

// Compact writes v in short notation with at most one decimal:
// 1200 is "1.2K", 1200000 is "1.2M", 3000000000 is "3B".
func Compact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// Beyond trillions there is no short-scale suffix.
	if math.Abs(v) >= 1e15 {
		return strconv.FormatFloat(v, 'g', 2, 64)
	}

	value, prefix := v, ""
	if math.Abs(v) >= 1000 {
		value, prefix = humanize.ComputeSI(v)
	}

	// FtoaWithDigits truncates; round first so 1.25K reads 1.3K.
	value = math.Round(value*10) / 10
	// Rounding can carry into the next unit (999.96K -> 1000K -> 1M).
	if math.Abs(value) >= 1000 {
		if next, ok := nextPrefix(prefix); ok {
			value, prefix = math.Round(value/100)/10, next
		}
	}
	s := humanize.FtoaWithDigits(value, 1)

	suffix, ok := compactSuffix[prefix]
	if !ok {
		suffix = prefix
	}
	return s + suffix
}

func nextPrefix(prefix string) (string, bool) {
	for i, p := range siOrder {
		if p == prefix && i+1 < len(siOrder) {
			return siOrder[i+1], true
		}
	}
	return "", false
}
