// Package tracker implements Trackers, which track and save data from
// the episodes of a learning solver
package tracker

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Interface Tracker keeps track of episode data and saves the data
// after learning has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// Multi is a Tracker that sends each TimeStep to a number of Trackers
type Multi []Tracker

// Track tracks the TimeStep with each Tracker
func (m Multi) Track(t ts.TimeStep) {
	for _, tracker := range m {
		tracker.Track(t)
	}
}

// Save saves the data of each Tracker, returning the first error
// encountered
func (m Multi) Save() error {
	for _, tracker := range m {
		if err := tracker.Save(); err != nil {
			return err
		}
	}
	return nil
}

// save gob-encodes data to filename. Nothing is saved if filename is
// empty.
func save(filename string, data interface{}) error {
	if filename == "" {
		return nil
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %v", err)
	}
	return encode(file, data)
}

// encode gob-encodes data to w and closes it. Data is only saved once w
// is closed without error.
func encode(w io.WriteCloser, data interface{}) error {
	en := gob.NewEncoder(w)
	if err := en.Encode(data); err != nil {
		w.Close()
		return fmt.Errorf("save: could not encode data: %v", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("save: could not close save file: %w", err)
	}
	return nil
}

// load decodes gob-encoded data from filename into data
func load(filename string, data interface{}) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("load: could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	if err = dec.Decode(data); err != nil {
		return fmt.Errorf("load: could not decode data: %v", err)
	}
	return nil
}

// LoadData loads and returns the data saved by a Return Tracker
func LoadData(filename string) ([]float64, error) {
	var data []float64
	err := load(filename, &data)
	return data, err
}

// LoadLengths loads and returns the data saved by an EpisodeLength
// Tracker
func LoadLengths(filename string) ([]int, error) {
	var data []int
	err := load(filename, &data)
	return data, err
}
