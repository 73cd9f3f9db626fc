package tracker

import (
	"io"

	"github.com/samuelfneumann/gridlearn/timestep"
	"github.com/samuelfneumann/gridlearn/utils/progressbar"
)

// Progress displays a progress bar of finished episodes
type Progress struct {
	bar *progressbar.ManualProgressBar
}

// NewProgress returns a Progress tracker for a run of episodes
// episodes, drawing to out
func NewProgress(out io.Writer, episodes int) *Progress {
	return &Progress{progressbar.NewManualProgressBar(out, 40, episodes)}
}

// Track advances the progress bar at the end of each episode
func (p *Progress) Track(t timestep.TimeStep) {
	if t.Last() {
		p.bar.Increment()
		p.bar.Display()
	}
}

// Save finishes the progress bar
func (p *Progress) Save() error {
	p.bar.Close()
	return nil
}
