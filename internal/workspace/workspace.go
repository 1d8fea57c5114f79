package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/KaramelBytes/wardbot/internal/dataset"
	"github.com/KaramelBytes/wardbot/internal/history"
	"github.com/KaramelBytes/wardbot/internal/utils"
	"go.uber.org/zap"
)

// FileName is the workspace metadata file.
const FileName = "workspace.json"

// Workspace remembers which CSV files feed each dataset slot.
type Workspace struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Sources     map[dataset.Slot]*Source `json:"sources"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`

	// Not serialized: on-disk location of the workspace.json
	rootDir string `json:"-"`
}

// New constructs an in-memory workspace. Call Save() to persist.
func New(name, description, rootDir string) *Workspace {
	return &Workspace{
		Name:        name,
		Description: description,
		Sources:     make(map[dataset.Slot]*Source),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		rootDir:     rootDir,
	}
}

// Load reads workspace.json from dir.
func Load(dir string) (*Workspace, error) {
	path := filepath.Join(dir, FileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("workspace not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read workspace: %w", err)
	}
	var w Workspace
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("parse workspace: %w", err)
	}
	if w.Sources == nil {
		w.Sources = make(map[dataset.Slot]*Source)
	}
	w.rootDir = dir
	return &w, nil
}

// RootDir returns the on-disk workspace directory path.
func (w *Workspace) RootDir() string { return w.rootDir }

// HistoryPath is where the workspace keeps its question history.
func (w *Workspace) HistoryPath() string { return filepath.Join(w.rootDir, history.FileName) }

// Save writes workspace.json using atomic write.
func (w *Workspace) Save() error {
	if w.rootDir == "" {
		return errors.New("workspace root directory not set")
	}
	if err := utils.EnsureDir(w.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	w.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(w)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(w.rootDir, FileName), data)
}

// SetSource parses path to validate it and records it as the file for slot,
// replacing any earlier source. The parsed dataset is returned.
func (w *Workspace) SetSource(slot dataset.Slot, path string) (*dataset.Dataset, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	d, err := dataset.LoadFile(abs)
	if err != nil {
		return nil, err
	}
	if w.Sources == nil {
		w.Sources = make(map[dataset.Slot]*Source)
	}
	w.Sources[slot] = newSource(abs, d)
	w.UpdatedAt = time.Now()
	return d, nil
}

// Slots lists the slots that have a source, in stable order.
func (w *Workspace) Slots() []dataset.Slot {
	out := make([]dataset.Slot, 0, len(w.Sources))
	for s := range w.Sources {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SourceError reports a recorded source that could not be read.
type SourceError struct {
	Slot dataset.Slot
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("load %s source %s: %v", e.Slot, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Open reads every recorded source into a fresh State. Sources that can no
// longer be read leave their slot empty and are reported in the returned
// errors; the other slots are still loaded.
func (w *Workspace) Open(log *zap.Logger) (*dataset.State, []*SourceError) {
	st := dataset.NewState(log)
	var errs []*SourceError
	for _, slot := range w.Slots() {
		src := w.Sources[slot]
		d, err := dataset.LoadFile(src.Path)
		if err != nil {
			errs = append(errs, &SourceError{Slot: slot, Path: src.Path, Err: err})
			continue
		}
		st.Set(slot, d)
	}
	return st, errs
}
