package tracker

import (
	"github.com/samuelfneumann/gridlearn/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes.
// Note that an episode must finish for this Tracker to record its
// length.
type EpisodeLength struct {
	episodeLengths []int
	endTypes       map[timestep.EndType]int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{
		endTypes: make(map[timestep.EndType]int),
		filename: filename,
	}
}

// Track caches the episode length if the timestep passed to it is the
// last timestep in the episode
func (e *EpisodeLength) Track(t timestep.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, t.Number)
		e.endTypes[t.EndType()]++
	}
}

// Data returns the length of each finished episode
func (e *EpisodeLength) Data() []int {
	data := make([]int, len(e.episodeLengths))
	copy(data, e.episodeLengths)
	return data
}

// Ended returns the number of episodes that ended for the reason e
func (e *EpisodeLength) Ended(end timestep.EndType) int {
	return e.endTypes[end]
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() error {
	return save(e.filename, e.episodeLengths)
}
