// Package stats holds the small aggregates the question engine answers with.
package stats

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/wardbot/internal/dataset"
	"github.com/samber/lo"
)

// Indicator column prefixes stripped from display names.
const (
	HospitalPrefix = "hospital_"
	ProvincePrefix = "province_"
)

// ColumnAverage is the mean of a value column over the rows flagged by one
// indicator column.
type ColumnAverage struct {
	Column string
	Name   string
	Avg    float64
	Count  int
}

// Mean computes the average of a slice. It returns 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// Numbers keeps only the numeric values, in order.
func Numbers(values []dataset.Value) []float64 {
	return lo.FilterMap(values, func(v dataset.Value, _ int) (float64, bool) {
		return v.Float64()
	})
}

// Average is the mean of the numeric entries in values. Nulls and strings are
// ignored; no numeric entries yields 0.
func Average(values []dataset.Value) float64 {
	return Mean(Numbers(values))
}

// ColumnsWithPrefix returns the columns starting with prefix, in order.
func ColumnsWithPrefix(columns []string, prefix string) []string {
	return lo.Filter(columns, func(c string, _ int) bool {
		return strings.HasPrefix(c, prefix)
	})
}

// DisplayName strips a leading hospital_ or province_ prefix.
func DisplayName(column string) string {
	for _, p := range []string{HospitalPrefix, ProvincePrefix} {
		if strings.HasPrefix(column, p) {
			return strings.TrimPrefix(column, p)
		}
	}
	return column
}

// AverageByColumn computes, for each indicator column, the average of
// valueColumn over rows where the indicator equals the number 1. Results keep
// the order of indicatorColumns.
func AverageByColumn(rows []dataset.Row, indicatorColumns []string, valueColumn string) []ColumnAverage {
	return lo.Map(indicatorColumns, func(c string, _ int) ColumnAverage {
		flagged := lo.Filter(rows, func(r dataset.Row, _ int) bool {
			return r.Get(c).Equals(1)
		})
		vals := Numbers(lo.Map(flagged, func(r dataset.Row, _ int) dataset.Value {
			return r.Get(valueColumn)
		}))
		return ColumnAverage{Column: c, Name: DisplayName(c), Avg: Mean(vals), Count: len(vals)}
	})
}

// Highest returns the entry with the largest average. Ties go to the entry
// listed first. ok is false when avgs is empty.
func Highest(avgs []ColumnAverage) (ColumnAverage, bool) {
	return first(avgs, func(a, b ColumnAverage) bool { return a.Avg > b.Avg })
}

// Lowest returns the entry with the smallest average. Ties go to the entry
// listed first. ok is false when avgs is empty.
func Lowest(avgs []ColumnAverage) (ColumnAverage, bool) {
	return first(avgs, func(a, b ColumnAverage) bool { return a.Avg < b.Avg })
}

func first(avgs []ColumnAverage, less func(a, b ColumnAverage) bool) (ColumnAverage, bool) {
	if len(avgs) == 0 {
		return ColumnAverage{}, false
	}
	sorted := make([]ColumnAverage, len(avgs))
	copy(sorted, avgs)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted[0], true
}

// Trend classifies the change between the last two values of a series.
type Trend int

const (
	TrendStable Trend = iota
	TrendIncreasing
	TrendDecreasing
)

func (t Trend) String() string {
	switch t {
	case TrendIncreasing:
		return "increasing"
	case TrendDecreasing:
		return "decreasing"
	default:
		return "stable"
	}
}

// LastStepTrend compares the last two values of series. The caller decides
// how many points are required; fewer than two is reported as stable.
func LastStepTrend(series []float64) Trend {
	n := len(series)
	if n < 2 {
		return TrendStable
	}
	diff := series[n-1] - series[n-2]
	switch {
	case diff > 0:
		return TrendIncreasing
	case diff < 0:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
