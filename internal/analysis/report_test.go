package analysis

import (
	"testing"

	"github.com/KaramelBytes/wardbot/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wardCSV = `date,occupied_beds_ward,hospital_north,hospital_south,province_east,status
2024-01-01,10,1,0,1,open
2024-01-02,20,0,1,1,open
2024-01-03,,1,0,1,closed
2024-01-04,30,1,0,1,open
`

func TestSummarizeAndMarkdown(t *testing.T) {
	d := dataset.Parse("ward.csv", wardCSV)
	rep := Summarize(d, DefaultOptions())

	assert.Equal(t, 4, rep.Rows)
	require.Len(t, rep.Cols, 6)
	occ := rep.Cols[1]
	assert.Equal(t, "numeric", occ.Kind)
	assert.Equal(t, 1, occ.Missing)
	assert.Equal(t, 3, occ.NonNull)
	assert.Equal(t, 10.0, occ.Min)
	assert.Equal(t, 30.0, occ.Max)
	assert.Equal(t, 20.0, occ.Mean)
	assert.Equal(t, 20.0, rep.ValueAverage)

	status := rep.Cols[5]
	assert.Equal(t, "text", status.Kind)
	assert.Equal(t, 2, status.Unique)
	require.NotEmpty(t, status.TopValues)
	assert.Equal(t, "open", status.TopValues[0].Value)

	require.Len(t, rep.Groups, 3)
	assert.Equal(t, "hospital_north", rep.Groups[0].Column)
	assert.Equal(t, 20.0, rep.Groups[0].Avg)
	assert.Equal(t, 2, rep.Groups[0].Count)

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: ward.csv",
		"Rows: 4",
		"- occupied_beds_ward: numeric (non-null 3, missing 25.0%) — min 10, max 30, mean 20",
		"- status: text (non-null 4, missing 0.0%) — top: open(3), closed(1)",
		"[GROUP AVERAGES: occupied_beds_ward]",
		"- hospital_south (n=1): mean 20.00",
	} {
		assert.Contains(t, md, want)
	}
}

func TestGroupMeansRoundHalvesUp(t *testing.T) {
	d := dataset.Parse("q.csv", "occupied_beds_ward,hospital_a\n1,1\n2,1\n3,1\n3,1\n")
	rep := Summarize(d, DefaultOptions())
	assert.Contains(t, rep.Markdown(), "- hospital_a (n=4): mean 2.25")

	d = dataset.Parse("e.csv", "occupied_beds_ward,hospital_a\n"+
		"10,1\n10,1\n10,1\n10,1\n10,1\n10,1\n10,1\n11,1\n")
	rep = Summarize(d, DefaultOptions())
	assert.Contains(t, rep.Markdown(), "- hospital_a (n=8): mean 10.13")
}

func TestSummarizeEmptyColumn(t *testing.T) {
	d := dataset.Parse("e.csv", "a,b\n1,\n2,\n")
	rep := Summarize(d, Options{})
	require.Len(t, rep.Cols, 2)
	assert.Equal(t, "empty", rep.Cols[1].Kind)
	assert.Empty(t, rep.Groups, "no groups without a value column")
}

func TestMarkdownThousandsSeparator(t *testing.T) {
	rep := &Report{Name: "big.csv", Rows: 12345}
	assert.Contains(t, rep.Markdown(), "Rows: 12,345")
}
