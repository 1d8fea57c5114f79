package workspace

import (
	"time"

	"github.com/KaramelBytes/wardbot/internal/dataset"
)

// Source records a CSV file bound to a dataset slot.
type Source struct {
	ID       string    `json:"id"`
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Rows     int       `json:"rows"`
	Columns  []string  `json:"columns"`
	LoadedAt time.Time `json:"loaded_at"`
}

func newSource(path string, d *dataset.Dataset) *Source {
	return &Source{
		ID:       d.ID,
		Path:     path,
		Name:     d.Name,
		Rows:     d.Len(),
		Columns:  d.Columns(),
		LoadedAt: d.LoadedAt,
	}
}
