// Package query answers free-text questions about the loaded datasets by
// matching keywords against an ordered rule table.
package query

import (
	"regexp"
	"strings"

	"github.com/KaramelBytes/wardbot/internal/dataset"
	"github.com/KaramelBytes/wardbot/internal/render"
	"github.com/KaramelBytes/wardbot/internal/stats"
	"go.uber.org/zap"
)

// Columns names the CSV columns and indicator prefixes the engine reads.
type Columns struct {
	Date           string
	Occupied       string
	Predicted      string
	HospitalPrefix string
	ProvincePrefix string
}

// DefaultColumns returns the column layout of the standard exports.
func DefaultColumns() Columns {
	return Columns{
		Date:           "date",
		Occupied:       "occupied_beds_ward",
		Predicted:      "beds_available_ward",
		HospitalPrefix: stats.HospitalPrefix,
		ProvincePrefix: stats.ProvincePrefix,
	}
}

// Level tells the caller how to present an answer.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
)

// MsgNoHospitalData is the warning given while the hospital slot is empty.
const MsgNoHospitalData = "⚠️ Load hospital data first."

// Topics identify which rule produced an answer.
const (
	TopicNoHospitalData = "no_hospital_data"
	TopicAverageBeds    = "average_beds"
	TopicMostOccupied   = "most_occupied_hospital"
	TopicLeastOccupied  = "least_occupied_hospital"
	TopicProvince       = "top_province"
	TopicTrend          = "prediction_trend"
	TopicDate           = "date_lookup"
	TopicPromptAPI      = "prompt_api"
	TopicSummarizerAPI  = "summarizer_api"
	TopicTranslatorAPI  = "translator_api"
	TopicHelp           = "help"
)

// Answer is the engine's reply to one question.
type Answer struct {
	Topic string
	Level Level
	Doc   render.Doc
}

// String is the plain-text rendering of the answer.
func (a Answer) String() string { return a.Doc.String() }

// Option configures an Engine.
type Option func(*Engine)

// WithColumns overrides the column layout.
func WithColumns(c Columns) Option {
	return func(e *Engine) { e.cols = c }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine evaluates each question independently against the current State.
type Engine struct {
	state *dataset.State
	cols  Columns
	log   *zap.Logger
}

// New builds an Engine reading from state.
func New(state *dataset.State, opts ...Option) *Engine {
	e := &Engine{state: state, cols: DefaultColumns(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type rule struct {
	topic  string
	match  func(q string) bool
	answer func(e *Engine, question, q string) Answer
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func has(q string, words ...string) bool {
	for _, w := range words {
		if !strings.Contains(q, w) {
			return false
		}
	}
	return true
}

// Patterns overlap, so order decides: the first match wins.
var rules = []rule{
	{TopicAverageBeds, func(q string) bool { return has(q, "average", "beds") }, (*Engine).averageBeds},
	{TopicMostOccupied, func(q string) bool { return has(q, "most occupied") || has(q, "highest occupancy") }, (*Engine).mostOccupied},
	{TopicLeastOccupied, func(q string) bool { return has(q, "lowest", "hospital") }, (*Engine).leastOccupied},
	{TopicProvince, func(q string) bool { return has(q, "province") && (has(q, "occupancy") || has(q, "occupied")) }, (*Engine).topProvince},
	{TopicTrend, func(q string) bool { return has(q, "next day prediction trend") }, (*Engine).trend},
	{TopicDate, datePattern.MatchString, (*Engine).dateLookup},
	{TopicPromptAPI, func(q string) bool { return has(q, "prompt") }, (*Engine).promptAPI},
	{TopicSummarizerAPI, func(q string) bool { return has(q, "summarizer") }, (*Engine).summarizerAPI},
	{TopicTranslatorAPI, func(q string) bool { return has(q, "translator") }, (*Engine).translatorAPI},
}

// Ask answers question. It never fails: missing data and unknown questions
// come back as warning or help answers.
func (e *Engine) Ask(question string) Answer {
	question = strings.TrimSpace(question)
	if e.state == nil || e.state.Hospital().Empty() {
		return warn(TopicNoHospitalData, MsgNoHospitalData)
	}
	q := strings.ToLower(question)
	for _, r := range rules {
		if r.match(q) {
			e.log.Debug("question matched", zap.String("topic", r.topic), zap.String("question", question))
			return r.answer(e, question, q)
		}
	}
	e.log.Debug("question not understood", zap.String("question", question))
	return Answer{Topic: TopicHelp, Doc: helpDoc()}
}

func warn(topic, msg string) Answer {
	return Answer{Topic: topic, Level: LevelWarning, Doc: render.Text(msg)}
}

func (e *Engine) hospital() *dataset.Dataset { return e.state.Hospital() }

func (e *Engine) averageOccupied() float64 {
	return stats.Average(e.hospital().Column(e.cols.Occupied))
}

func (e *Engine) averageBeds(_, _ string) Answer {
	return Answer{Topic: TopicAverageBeds, Doc: render.Doc{render.L(
		render.T("📊 Average occupied ward beds (total): "),
		render.B(render.Fixed(e.averageOccupied(), 2)),
	)}}
}

func (e *Engine) indicatorAverages(prefix string) []stats.ColumnAverage {
	h := e.hospital()
	cols := stats.ColumnsWithPrefix(h.Columns(), prefix)
	avgs := stats.AverageByColumn(h.Rows(), cols, e.cols.Occupied)
	for i := range avgs {
		avgs[i].Name = strings.TrimPrefix(avgs[i].Column, prefix)
	}
	return avgs
}

func ranked(topic, label string, best stats.ColumnAverage) Answer {
	return Answer{Topic: topic, Doc: render.Doc{render.L(
		render.T(label),
		render.B(best.Name),
		render.T(" (" + render.Fixed(best.Avg, 2) + " beds)"),
	)}}
}

func (e *Engine) mostOccupied(_, _ string) Answer {
	best, ok := stats.Highest(e.indicatorAverages(e.cols.HospitalPrefix))
	if !ok {
		return warn(TopicMostOccupied, "⚠️ No hospital indicator columns found.")
	}
	return ranked(TopicMostOccupied, "🏥 Most occupied hospital: ", best)
}

func (e *Engine) leastOccupied(_, _ string) Answer {
	best, ok := stats.Lowest(e.indicatorAverages(e.cols.HospitalPrefix))
	if !ok {
		return warn(TopicLeastOccupied, "⚠️ No hospital indicator columns found.")
	}
	return ranked(TopicLeastOccupied, "🏥 Least occupied hospital: ", best)
}

func (e *Engine) topProvince(_, _ string) Answer {
	best, ok := stats.Highest(e.indicatorAverages(e.cols.ProvincePrefix))
	if !ok {
		return warn(TopicProvince, "⚠️ No province indicator columns found.")
	}
	return ranked(TopicProvince, "🗺️ Province with highest average ward occupancy: ", best)
}

// minTrendPoints is the number of numeric predictions the trend needs.
const minTrendPoints = 3

func (e *Engine) trend(_, _ string) Answer {
	preds := e.state.Predictions()
	if preds.Empty() {
		return warn(TopicTrend, "⚠️ Load predictions CSV first.")
	}
	series := stats.Numbers(preds.Column(e.cols.Predicted))
	if len(series) < minTrendPoints {
		return Answer{Topic: TopicTrend, Level: LevelWarning, Doc: render.Text("Not enough prediction data to analyze trend.")}
	}
	var label string
	switch t := stats.LastStepTrend(series); t {
	case stats.TrendIncreasing:
		label = t.String() + " 📈"
	case stats.TrendDecreasing:
		label = t.String() + " 📉"
	default:
		label = t.String() + " ➖"
	}
	return Answer{Topic: TopicTrend, Doc: render.Doc{render.L(
		render.T("📆 Next day prediction trend: "),
		render.B(label),
	)}}
}

// cell renders a looked-up value; null shows as N/A.
func cell(v dataset.Value) string {
	if v.IsNull() {
		return "N/A"
	}
	return v.String()
}

func (e *Engine) dateLookup(_, q string) Answer {
	doc := render.Doc{render.L(render.T("📅 Date: "), render.B(q))}

	if row, ok := e.hospital().Find(e.cols.Date, q); ok {
		doc = append(doc, render.L(
			render.T("🏥 Real data - Occupied beds total: "),
			render.B(cell(row.Get(e.cols.Occupied))),
		))
	} else {
		doc = append(doc, render.L(render.T("🏥 Real data: N/A")))
	}

	if row, ok := e.state.Predictions().Find(e.cols.Date, q); ok {
		doc = append(doc, render.L(
			render.T("📈 Predicted beds available total: "),
			render.B(cell(row.Get(e.cols.Predicted))),
		))
	} else {
		doc = append(doc, render.L(render.T("📈 Prediction: N/A")))
	}
	return Answer{Topic: TopicDate, Doc: doc}
}

func (e *Engine) promptAPI(question, _ string) Answer {
	return Answer{Topic: TopicPromptAPI, Doc: render.Doc{
		render.L(render.T("💭 "), render.B("Prompt API")),
		render.L(render.T("Simulated structured output for: \"" + question + "\"")),
	}}
}

func (e *Engine) summarizerAPI(_, _ string) Answer {
	return Answer{Topic: TopicSummarizerAPI, Doc: render.Doc{
		render.L(render.T("📄 "), render.B("Summarizer API")),
		render.L(render.T("Summary: Hospital occupancy is stable with minor variations.")),
	}}
}

func (e *Engine) translatorAPI(_, _ string) Answer {
	return Answer{Topic: TopicTranslatorAPI, Doc: render.Doc{
		render.L(render.T("🌐 "), render.B("Translator API")),
		render.L(render.T("Simulated translation: \"Average ward occupancy: " + render.Fixed(e.averageOccupied(), 1) + " beds\"")),
	}}
}
