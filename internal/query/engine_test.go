package query_test

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/wardbot/internal/dataset"
	"github.com/KaramelBytes/wardbot/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hospitalCSV = `date,occupied_beds_ward,hospital_north,hospital_south,hospital_east,province_a,province_b
2024-01-01,10,1,0,0,1,0
2024-01-02,30,0,1,0,0,1
2024-01-03,20,1,0,0,1,0
2024-01-04,30,0,1,0,0,1
2024-01-05,5,0,0,1,1,0
`

const predictionsCSV = `date,beds_available_ward
2024-01-05,10
2024-01-06,8
2024-01-07,5
`

func newEngine(t *testing.T, hospital, predictions string) *query.Engine {
	t.Helper()
	st := dataset.NewState(nil)
	if hospital != "" {
		st.Set(dataset.SlotHospital, dataset.Parse("hospital.csv", hospital))
	}
	if predictions != "" {
		st.Set(dataset.SlotPredictions, dataset.Parse("predictions.csv", predictions))
	}
	return query.New(st)
}

func TestAsk_EmptyHospitalShortCircuits(t *testing.T) {
	e := newEngine(t, "", predictionsCSV)
	questions := append([]string{"hello", "2024-01-06", "translator"}, query.Presets...)
	for _, q := range questions {
		a := e.Ask(q)
		assert.Equal(t, query.TopicNoHospitalData, a.Topic, q)
		assert.Equal(t, query.LevelWarning, a.Level, q)
		assert.Equal(t, "⚠️ Load hospital data first.", a.String(), q)
	}

	headerOnly := newEngine(t, "date,occupied_beds_ward\n", "")
	assert.Equal(t, query.TopicNoHospitalData, headerOnly.Ask("average beds").Topic)
}

func TestAsk_AverageBeds(t *testing.T) {
	e := newEngine(t, hospitalCSV, "")
	a := e.Ask("  What is the AVERAGE number of beds? ")
	assert.Equal(t, query.TopicAverageBeds, a.Topic)
	assert.Equal(t, "📊 Average occupied ward beds (total): 19.00", a.String())
}

func TestAsk_AveragesRoundHalvesUp(t *testing.T) {
	quarter := newEngine(t, "date,occupied_beds_ward,hospital_A\n"+
		"2024-01-01,1,1\n2024-01-02,2,1\n2024-01-03,3,1\n2024-01-04,3,1\n", "")
	assert.Equal(t, "🌐 Translator API\nSimulated translation: \"Average ward occupancy: 2.3 beds\"",
		quarter.Ask("translator").String())
	assert.Equal(t, "📊 Average occupied ward beds (total): 2.25", quarter.Ask("average beds").String())

	// eight rows summing to 81
	eighth := newEngine(t, "date,occupied_beds_ward,hospital_A\n"+
		"2024-01-01,10,1\n2024-01-02,10,1\n2024-01-03,10,1\n2024-01-04,10,1\n"+
		"2024-01-05,10,1\n2024-01-06,10,1\n2024-01-07,10,1\n2024-01-08,11,1\n", "")
	assert.Equal(t, "📊 Average occupied ward beds (total): 10.13", eighth.Ask("average beds").String())
	assert.Equal(t, "🏥 Most occupied hospital: A (10.13 beds)", eighth.Ask("most occupied hospital").String())
}

func TestAsk_MostAndLeastOccupiedHospital(t *testing.T) {
	e := newEngine(t, hospitalCSV, "")

	a := e.Ask("most occupied hospital")
	assert.Equal(t, query.TopicMostOccupied, a.Topic)
	assert.Equal(t, "🏥 Most occupied hospital: south (30.00 beds)", a.String())

	a = e.Ask("hospital with lowest occupancy")
	assert.Equal(t, query.TopicLeastOccupied, a.Topic)
	assert.Equal(t, "🏥 Least occupied hospital: east (5.00 beds)", a.String())
}

func TestAsk_TieBreakUsesColumnOrder(t *testing.T) {
	csv := "date,occupied_beds_ward,hospital_x,hospital_y\n" +
		"2024-01-01,10,1,0\n" +
		"2024-01-02,10,0,1\n"
	e := newEngine(t, csv, "")
	assert.Equal(t, "🏥 Most occupied hospital: x (10.00 beds)", e.Ask("highest occupancy").String())
	assert.Equal(t, "🏥 Least occupied hospital: x (10.00 beds)", e.Ask("lowest hospital").String())
}

func TestAsk_Province(t *testing.T) {
	e := newEngine(t, hospitalCSV, "")
	a := e.Ask("which province has the biggest occupancy")
	assert.Equal(t, query.TopicProvince, a.Topic)
	assert.Equal(t, "🗺️ Province with highest average ward occupancy: b (30.00 beds)", a.String())
}

func TestAsk_RuleOrderWins(t *testing.T) {
	e := newEngine(t, hospitalCSV, "")
	// "highest occupancy" is checked before the province rule.
	assert.Equal(t, query.TopicMostOccupied, e.Ask("province with highest occupancy").Topic)
	// "lowest" + "hospital" is checked before the province rule.
	assert.Equal(t, query.TopicLeastOccupied, e.Ask("lowest hospital occupancy by province").Topic)
	// "average" + "beds" beats everything else.
	assert.Equal(t, query.TopicAverageBeds, e.Ask("average beds in the most occupied hospital").Topic)
}

func TestAsk_MissingIndicatorColumns(t *testing.T) {
	e := newEngine(t, "date,occupied_beds_ward\n2024-01-01,4\n", "")
	a := e.Ask("most occupied")
	assert.Equal(t, query.LevelWarning, a.Level)
	assert.Equal(t, "⚠️ No hospital indicator columns found.", a.String())
	assert.Equal(t, "⚠️ No province indicator columns found.", e.Ask("province occupied").String())
}

func TestAsk_Trend(t *testing.T) {
	e := newEngine(t, hospitalCSV, predictionsCSV)
	a := e.Ask("next day prediction trend")
	assert.Equal(t, query.TopicTrend, a.Topic)
	assert.Equal(t, "📆 Next day prediction trend: decreasing 📉", a.String())

	flat := newEngine(t, hospitalCSV, "date,beds_available_ward\n2024-01-01,10\n2024-01-02,10\n2024-01-03,10\n")
	assert.Equal(t, "📆 Next day prediction trend: stable ➖", flat.Ask("next day prediction trend").String())

	up := newEngine(t, hospitalCSV, "date,beds_available_ward\n2024-01-01,1\n2024-01-02,n/a\n2024-01-03,2\n2024-01-04,3,5\n")
	assert.Equal(t, "📆 Next day prediction trend: increasing 📈", up.Ask("next day prediction trend").String())
}

func TestAsk_TrendPrerequisites(t *testing.T) {
	noPreds := newEngine(t, hospitalCSV, "")
	a := noPreds.Ask("next day prediction trend")
	assert.Equal(t, query.TopicTrend, a.Topic)
	assert.Equal(t, "⚠️ Load predictions CSV first.", a.String())

	short := newEngine(t, hospitalCSV, "date,beds_available_ward\n2024-01-01,10\n2024-01-02,8\n2024-01-03,\n")
	a = short.Ask("next day prediction trend")
	assert.Equal(t, query.LevelWarning, a.Level)
	assert.Equal(t, "Not enough prediction data to analyze trend.", a.String())
}

func TestAsk_DateLookups(t *testing.T) {
	e := newEngine(t, hospitalCSV, predictionsCSV)

	onlyPred := e.Ask("2024-01-06")
	assert.Equal(t, query.TopicDate, onlyPred.Topic)
	assert.Equal(t, "📅 Date: 2024-01-06\n🏥 Real data: N/A\n📈 Predicted beds available total: 8", onlyPred.String())

	onlyReal := e.Ask(" 2024-01-01 ")
	assert.Equal(t, "📅 Date: 2024-01-01\n🏥 Real data - Occupied beds total: 10\n📈 Prediction: N/A", onlyReal.String())

	both := e.Ask("2024-01-05")
	assert.Equal(t, "📅 Date: 2024-01-05\n🏥 Real data - Occupied beds total: 5\n📈 Predicted beds available total: 10", both.String())

	neither := e.Ask("1999-12-31")
	assert.Equal(t, "📅 Date: 1999-12-31\n🏥 Real data: N/A\n📈 Prediction: N/A", neither.String())

	// Not an exact date match: falls through to help.
	assert.Equal(t, query.TopicHelp, e.Ask("on 2024-01-06").Topic)
}

func TestAsk_SimulatedAPIs(t *testing.T) {
	e := newEngine(t, hospitalCSV, "")

	a := e.Ask("Prompt: list wards")
	assert.Equal(t, query.TopicPromptAPI, a.Topic)
	assert.Equal(t, "💭 Prompt API\nSimulated structured output for: \"Prompt: list wards\"", a.String())

	a = e.Ask("run the summarizer")
	assert.Equal(t, query.TopicSummarizerAPI, a.Topic)
	assert.Equal(t, "📄 Summarizer API\nSummary: Hospital occupancy is stable with minor variations.", a.String())

	a = e.Ask("translator please")
	assert.Equal(t, query.TopicTranslatorAPI, a.Topic)
	assert.Equal(t, "🌐 Translator API\nSimulated translation: \"Average ward occupancy: 19.0 beds\"", a.String())

	// "prompt" is checked before "translator".
	assert.Equal(t, query.TopicPromptAPI, e.Ask("translator prompt").Topic)
}

func TestAsk_FallbackHelp(t *testing.T) {
	e := newEngine(t, hospitalCSV, predictionsCSV)
	a := e.Ask("hello")
	assert.Equal(t, query.TopicHelp, a.Topic)
	assert.Equal(t, query.HelpText(), a.String())
	assert.True(t, strings.HasPrefix(a.String(), "🤖 Sorry, I didn't understand your question."))
	assert.True(t, strings.HasSuffix(a.String(), "- a date (YYYY-MM-DD)"))
}

func TestAsk_CustomColumns(t *testing.T) {
	cols := query.DefaultColumns()
	cols.Occupied = "beds"
	cols.HospitalPrefix = "h_"
	st := dataset.NewState(nil)
	st.Set(dataset.SlotHospital, dataset.Parse("h.csv", "date,beds,h_alpha,h_beta\n2024-01-01,3,1,0\n2024-01-02,9,0,1\n"))
	e := query.New(st, query.WithColumns(cols))

	assert.Equal(t, "📊 Average occupied ward beds (total): 6.00", e.Ask("average beds").String())
	assert.Equal(t, "🏥 Most occupied hospital: beta (9.00 beds)", e.Ask("most occupied").String())
}

func TestPreset(t *testing.T) {
	q, err := query.Preset(1)
	require.NoError(t, err)
	assert.Equal(t, "average beds", q)

	_, err = query.Preset(0)
	assert.Error(t, err)
	_, err = query.Preset(len(query.Presets) + 1)
	assert.Error(t, err)
}
