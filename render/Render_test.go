package render

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/mdp"
)

func snapshot() gridworld.Snapshot {
	return gridworld.MustParse(
		"S.#",
		"..3",
		"...",
	).Snapshot()
}

func TestTerminalPlain(t *testing.T) {
	path := []environment.Position{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}

	var out bytes.Buffer
	if err := Terminal(&out, snapshot(), path, false); err != nil {
		t.Fatal(err)
	}

	want := "S.#\n**3\n...\n"
	if out.String() != want {
		t.Errorf("terminal = %q, want %q", out.String(), want)
	}
}

func TestTerminalColors(t *testing.T) {
	var out bytes.Buffer
	if err := Terminal(&out, snapshot(), nil, true); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out.Bytes(), []byte("\x1b[")) {
		t.Errorf("coloured output has no escape codes: %q", out.String())
	}
}

func TestImage(t *testing.T) {
	cell := 20
	img := Image(snapshot(), nil, cell)

	bounds := img.Bounds()
	if bounds.Dx() != 3*cell || bounds.Dy() != 3*cell {
		t.Fatalf("image is %v, want %dx%d", bounds, 3*cell, 3*cell)
	}

	// Sample away from the centre labels and the grid lines
	tests := []struct {
		x, y int
		want [3]uint32
	}{
		{2*cell + 4, 4, [3]uint32{60, 60, 60}},       // obstacle
		{2*cell + 4, cell + 4, [3]uint32{80, 170, 80}}, // goal
		{4, 2*cell + 4, [3]uint32{245, 245, 245}},      // empty
	}
	for _, test := range tests {
		r, g, b, _ := img.At(test.x, test.y).RGBA()
		got := [3]uint32{r >> 8, g >> 8, b >> 8}
		if got != test.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", test.x, test.y, got,
				test.want)
		}
	}
}

func TestSavePNG(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "grid.png")
	path := []environment.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	if err := SavePNG(filename, snapshot(), path, 16); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(filename); err != nil || info.Size() == 0 {
		t.Errorf("png not written: %v", err)
	}
}

func TestValueGrid(t *testing.T) {
	values := agent.Values{
		mdp.NewState(environment.Position{Row: 0, Col: 1}, 0, []int{1}): 2,
		mdp.NewState(environment.Position{Row: 0, Col: 1}, 1, []int{0}): 5,
		mdp.NewState(environment.Position{Row: 1, Col: 0}, 0, []int{1}): -1,
	}

	grid := ValueGrid(2, values)
	if grid.At(0, 1) != 5 || grid.At(1, 0) != -1 {
		t.Errorf("unexpected values %v", FormatValues(2, values))
	}
	if !math.IsNaN(grid.At(0, 0)) || !math.IsNaN(grid.At(1, 1)) {
		t.Error("cells without states should be NaN")
	}
}
