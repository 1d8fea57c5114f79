package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/wardbot/internal/dataset"
	"github.com/KaramelBytes/wardbot/internal/render"
	"github.com/KaramelBytes/wardbot/internal/stats"
	"github.com/dustin/go-humanize"
)

// Options controls which sections a Report carries.
type Options struct {
	// ValueColumn is averaged per indicator column in the group section.
	ValueColumn string
	// IndicatorPrefixes select one-hot columns for the group section.
	IndicatorPrefixes []string
	// TopValues caps the text values listed per column.
	TopValues int
}

// DefaultOptions returns the layout of the standard hospital export.
func DefaultOptions() Options {
	return Options{
		ValueColumn:       "occupied_beds_ward",
		IndicatorPrefixes: []string{stats.HospitalPrefix, stats.ProvincePrefix},
		TopValues:         3,
	}
}

// Report is a markdown-friendly summary of a loaded dataset.
type Report struct {
	Name   string
	Rows   int
	Cols   []ColumnSummary
	Groups []stats.ColumnAverage
	// ValueAverage is the mean of Options.ValueColumn over all rows.
	ValueAverage float64
	ValueColumn  string
}

// ColumnSummary captures inferred kind and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|text|mixed|empty
	NonNull int
	Missing int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	// Text values by frequency
	TopValues []CategoryCount
	Unique    int
}

type CategoryCount struct {
	Value string
	Count int
}

// Summarize builds a Report from d.
func Summarize(d *dataset.Dataset, opt Options) *Report {
	rep := &Report{Name: d.Name, Rows: d.Len(), ValueColumn: opt.ValueColumn}
	for _, name := range d.Columns() {
		rep.Cols = append(rep.Cols, summarizeColumn(name, d.Column(name), opt.TopValues))
	}
	if opt.ValueColumn != "" {
		rep.ValueAverage = stats.Average(d.Column(opt.ValueColumn))
		for _, p := range opt.IndicatorPrefixes {
			cols := stats.ColumnsWithPrefix(d.Columns(), p)
			rep.Groups = append(rep.Groups, stats.AverageByColumn(d.Rows(), cols, opt.ValueColumn)...)
		}
	}
	return rep
}

func summarizeColumn(name string, vals []dataset.Value, topN int) ColumnSummary {
	s := ColumnSummary{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}
	var nums []float64
	cats := map[string]int{}
	for _, v := range vals {
		switch v.Kind() {
		case dataset.KindNull:
			s.Missing++
			continue
		case dataset.KindNumber:
			x := v.Float()
			nums = append(nums, x)
			s.Min = math.Min(s.Min, x)
			s.Max = math.Max(s.Max, x)
		case dataset.KindString:
			cats[v.Text()]++
		}
		s.NonNull++
	}
	switch {
	case s.NonNull == 0:
		s.Kind = "empty"
	case len(cats) == 0:
		s.Kind = "numeric"
	case len(nums) == 0:
		s.Kind = "text"
	default:
		s.Kind = "mixed"
	}
	if len(nums) > 0 {
		s.Mean = stats.Mean(nums)
	} else {
		s.Min, s.Max = 0, 0
	}
	if len(cats) > 0 {
		tops := make([]CategoryCount, 0, len(cats))
		for k, v := range cats {
			tops = append(tops, CategoryCount{Value: k, Count: v})
		}
		sort.Slice(tops, func(i, j int) bool {
			if tops[i].Count == tops[j].Count {
				return tops[i].Value < tops[j].Value
			}
			return tops[i].Count > tops[j].Count
		})
		if topN > 0 && len(tops) > topN {
			tops = tops[:topN]
		}
		s.TopValues = tops
		s.Unique = len(cats)
	}
	return s
}

// Markdown renders the report as a compact text block.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %s\n", humanize.Comma(int64(r.Rows))))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %s%%)", c.Name, c.Kind, c.NonNull, render.Fixed(missPct, 1)))
		if c.Kind == "numeric" || c.Kind == "mixed" {
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g", c.Min, c.Max, c.Mean))
		}
		if len(c.TopValues) > 0 {
			b.WriteString(" — top: ")
			for i, kv := range c.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", kv.Value, kv.Count))
			}
			if c.Unique > len(c.TopValues) {
				b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
			}
		}
		b.WriteString("\n")
	}
	if len(r.Groups) > 0 {
		b.WriteString(fmt.Sprintf("\n[GROUP AVERAGES: %s]\n", r.ValueColumn))
		for _, g := range r.Groups {
			b.WriteString(fmt.Sprintf("- %s (n=%d): mean %s\n", g.Column, g.Count, render.Fixed(g.Avg, 2)))
		}
	}
	return b.String()
}
