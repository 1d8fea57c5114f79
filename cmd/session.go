package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/wardbot/internal/dataset"
	"github.com/KaramelBytes/wardbot/internal/history"
	"github.com/KaramelBytes/wardbot/internal/query"
	"github.com/KaramelBytes/wardbot/internal/render"
	"github.com/KaramelBytes/wardbot/internal/workspace"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// session bundles the dataset slots, the engine answering against them and
// the optional workspace and history backing a command.
type session struct {
	state  *dataset.State
	engine *query.Engine
	ws     *workspace.Workspace
	hist   *history.Manager
	format render.Format
	out    io.Writer
	errOut io.Writer
}

// openSession loads the workspace (when one is named or found from the
// working directory) and then applies any file overrides.
func openSession(out, errOut io.Writer, wsName, hospitalPath, predictionsPath string) (*session, error) {
	format, err := outputFormat()
	if err != nil {
		return nil, err
	}
	s := &session{format: format, out: out, errOut: errOut}

	dir, err := lookupWorkspaceDir(wsName)
	if err != nil {
		return nil, err
	}
	if dir != "" {
		ws, err := workspace.Load(dir)
		if err != nil {
			return nil, err
		}
		st, errs := ws.Open(logger)
		for _, e := range errs {
			fmt.Fprintf(errOut, "❌ Error loading %s CSV: %v\n", e.Slot, e.Err)
		}
		s.ws, s.state = ws, st
		if settings().HistoryEnabled {
			h, err := history.Open(ws.HistoryPath())
			if err != nil {
				logger.Warn("history disabled", zap.Error(err))
			} else {
				s.hist = h
			}
		}
	} else {
		s.state = dataset.NewState(logger)
	}
	s.engine = query.New(s.state, query.WithColumns(engineColumns()), query.WithLogger(logger))

	if hospitalPath != "" {
		s.load(dataset.SlotHospital, hospitalPath, false)
	}
	if predictionsPath != "" {
		s.load(dataset.SlotPredictions, predictionsPath, false)
	}
	return s, nil
}

func (s *session) Close() {
	if s.hist != nil {
		if err := s.hist.Close(); err != nil {
			logger.Warn("close history", zap.Error(err))
		}
	}
}

// load replaces slot with the file at path. Failures are reported to the
// user and leave the slot as it was.
func (s *session) load(slot dataset.Slot, path string, verbose bool) bool {
	d, err := s.state.Load(slot, path)
	if err != nil {
		fmt.Fprintf(s.errOut, "❌ Error loading %s CSV: %v\n", slot, err)
		return false
	}
	if verbose {
		fmt.Fprintln(s.out, loadedMessage(slot, d))
	}
	return true
}

func loadedMessage(slot dataset.Slot, d *dataset.Dataset) string {
	rows := humanize.Comma(int64(d.Len()))
	if slot == dataset.SlotPredictions {
		return fmt.Sprintf("✅ Predictions loaded (%s rows)", rows)
	}
	return fmt.Sprintf("✅ Hospital data loaded (%s rows)", rows)
}

// ask answers question, prints it and records it in history.
func (s *session) ask(question string) query.Answer {
	ans := s.engine.Ask(question)
	fmt.Fprintln(s.out, ans.Doc.Render(s.format))
	if s.hist != nil {
		e, err := s.hist.Record(strings.TrimSpace(question), ans.Topic, ans.String())
		if err != nil {
			logger.Warn("record history", zap.Error(err))
		} else {
			logger.Debug("history recorded", zap.Uint("id", e.ID), zap.String("topic", ans.Topic))
		}
	}
	return ans
}
