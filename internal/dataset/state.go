package dataset

import (
	"fmt"

	"go.uber.org/zap"
)

// Slot names one of the two dataset slots.
type Slot string

const (
	SlotHospital    Slot = "hospital"
	SlotPredictions Slot = "predictions"
)

// ParseSlot maps a slot name or short alias to a Slot.
func ParseSlot(s string) (Slot, error) {
	switch s {
	case "hospital", "h", "real":
		return SlotHospital, nil
	case "predictions", "prediction", "p", "pred":
		return SlotPredictions, nil
	default:
		return "", fmt.Errorf("unknown dataset slot: %s (use hospital or predictions)", s)
	}
}

// State holds the hospital and predictions datasets. Each load replaces the
// slot wholesale; nothing is merged. State is not safe for concurrent use.
type State struct {
	hospital    *Dataset
	predictions *Dataset
	log         *zap.Logger
}

// NewState returns an empty State. A nil logger is replaced by a no-op one.
func NewState(log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	return &State{log: log}
}

func (s *State) Hospital() *Dataset { return s.hospital }
func (s *State) Predictions() *Dataset { return s.predictions }

// Set replaces the dataset held in slot.
func (s *State) Set(slot Slot, d *Dataset) {
	switch slot {
	case SlotHospital:
		s.hospital = d
	case SlotPredictions:
		s.predictions = d
	default:
		return
	}
	s.log.Debug("dataset slot replaced",
		zap.String("slot", string(slot)),
		zap.String("dataset_id", d.idOrEmpty()),
		zap.Int("rows", d.Len()))
}

// Get returns the dataset held in slot.
func (s *State) Get(slot Slot) *Dataset {
	switch slot {
	case SlotHospital:
		return s.hospital
	case SlotPredictions:
		return s.predictions
	}
	return nil
}

// Load reads path and assigns it to slot. On failure the slot is untouched.
func (s *State) Load(slot Slot, path string) (*Dataset, error) {
	d, err := LoadFile(path)
	if err != nil {
		s.log.Debug("dataset load failed", zap.String("slot", string(slot)), zap.String("path", path), zap.Error(err))
		return nil, err
	}
	s.Set(slot, d)
	return d, nil
}

func (d *Dataset) idOrEmpty() string {
	if d == nil {
		return ""
	}
	return d.ID
}
