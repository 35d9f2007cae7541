package viz

import (
	"bytes"
	"context"
	"image/gif"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/stochsim/internal/config"
	"github.com/san-kum/stochsim/internal/experiment"
)

func runPreset(t *testing.T, process, name string) *experiment.Result {
	t.Helper()
	cfg := config.GetPreset(process, name)
	if cfg == nil {
		t.Fatalf("preset %s/%s not found", process, name)
	}
	res, err := experiment.New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run %s/%s: %v", process, name, err)
	}
	return res
}

func dots(c *Canvas) int {
	n := 0
	pw, ph := c.PixelSize()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if c.IsSet(x, y) {
				n++
			}
		}
	}
	return n
}

func TestFramesEveryPreset(t *testing.T) {
	for _, process := range config.Processes {
		for _, name := range config.ListPresets(process) {
			t.Run(process+"/"+name, func(t *testing.T) {
				res := runPreset(t, process, name)
				frames, err := Frames(res, 40, 12)
				if err != nil {
					t.Fatalf("Frames: %v", err)
				}
				want := min(frameCount(res), MaxFrames)
				if len(frames) != want {
					t.Fatalf("got %d frames, want %d", len(frames), want)
				}
				last := frames[len(frames)-1]
				if dots(last) == 0 {
					t.Error("last frame is empty")
				}
				if last.Width != 40 || last.Height != 12 {
					t.Errorf("frame size %dx%d", last.Width, last.Height)
				}
			})
		}
	}
}

func TestFramesGrow(t *testing.T) {
	res := runPreset(t, "walk", "2d")
	frames, err := Frames(res, 40, 12)
	if err != nil {
		t.Fatal(err)
	}
	if dots(frames[0]) >= dots(frames[len(frames)-1]) {
		t.Errorf("first frame has %d dots, last %d", dots(frames[0]), dots(frames[len(frames)-1]))
	}
}

func TestFramesMarkovLabels(t *testing.T) {
	res := runPreset(t, "markov", "abcd")
	frames, err := Frames(res, 60, 20)
	if err != nil {
		t.Fatal(err)
	}
	out := frames[0].String()
	for _, s := range res.Chain.States() {
		if !strings.Contains(out, s) {
			t.Errorf("state %q not labelled", s)
		}
	}
}

func TestFramesErrors(t *testing.T) {
	if _, err := Frames(nil, 10, 10); err == nil {
		t.Error("nil result accepted")
	}
	if _, err := Frames(&experiment.Result{Process: "queue"}, 10, 10); err == nil {
		t.Error("unknown process accepted")
	}
}

func TestSampleIndices(t *testing.T) {
	tests := []struct {
		n, limit int
		wantLen  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 10},
		{1000, 10, 10},
	}
	for _, tt := range tests {
		idx := sampleIndices(tt.n, tt.limit)
		if len(idx) != tt.wantLen {
			t.Errorf("sampleIndices(%d, %d) has %d entries, want %d", tt.n, tt.limit, len(idx), tt.wantLen)
			continue
		}
		if tt.n > 0 && (idx[0] != 0 || idx[len(idx)-1] != tt.n-1) {
			t.Errorf("sampleIndices(%d, %d) = %v, want first 0 and last %d", tt.n, tt.limit, idx, tt.n-1)
		}
	}
}

func TestPlot(t *testing.T) {
	for _, tc := range []struct{ process, name, want string }{
		{"markov", "abcd", "state index"},
		{"brownian", "2d", "y by step"},
		{"poisson", "default", "N(t)"},
		{"walk", "1d", "x by step"},
	} {
		res := runPreset(t, tc.process, tc.name)
		out, err := Plot(res, PlotOptions{Width: 40, Height: 6})
		if err != nil {
			t.Fatalf("%s: %v", tc.process, err)
		}
		if !strings.Contains(out, tc.want) {
			t.Errorf("%s plot missing %q", tc.process, tc.want)
		}
	}
}

func TestWriteGIF(t *testing.T) {
	res := runPreset(t, "walk", "1d")
	frames, err := Frames(res, 20, 6)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteGIF(&buf, frames, 10); err != nil {
		t.Fatalf("WriteGIF: %v", err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != len(frames) {
		t.Errorf("gif has %d images, want %d", len(g.Image), len(frames))
	}
	if b := g.Image[0].Bounds(); b.Dx() != 20*cellW || b.Dy() != 6*cellH {
		t.Errorf("image bounds %v", b)
	}

	if err := WriteGIF(&buf, nil, 10); err == nil {
		t.Error("empty frame list accepted")
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(p Player, msg tea.Msg) Player {
	next, _ := p.Update(msg)
	return next.(Player)
}

func TestPlayerControls(t *testing.T) {
	res := runPreset(t, "markov", "abcd")
	p, err := NewPlayer(res, PlayerOptions{Width: 40, Height: 12, FPS: 10, Theme: "ocean"})
	if err != nil {
		t.Fatal(err)
	}
	if !p.Running() || p.Pos() != 0 {
		t.Fatalf("new player running=%v pos=%d", p.Running(), p.Pos())
	}

	p = update(p, TickMsg{id: p.id})
	if p.Pos() != 1 {
		t.Errorf("tick moved to %d, want 1", p.Pos())
	}

	p = update(p, key(" "))
	if p.Running() {
		t.Error("space did not pause")
	}
	p = update(p, TickMsg{id: p.id})
	if p.Pos() != 1 {
		t.Errorf("paused tick moved to %d", p.Pos())
	}

	p = update(p, key("]"))
	p = update(p, key("]"))
	p = update(p, key("["))
	if p.Pos() != 2 {
		t.Errorf("scrub left pos at %d, want 2", p.Pos())
	}
	for i := 0; i < 5; i++ {
		p = update(p, key("["))
	}
	if p.Pos() != 0 {
		t.Errorf("scrub past start left pos at %d", p.Pos())
	}

	p = update(p, key("t"))
	if p.ThemeName() != "sunset" {
		t.Errorf("theme = %s, want sunset", p.ThemeName())
	}

	p = update(p, key("r"))
	for i := 0; i < p.Len()+3; i++ {
		p = update(p, TickMsg{id: p.id})
	}
	if p.Running() || p.Pos() != p.Len()-1 {
		t.Errorf("after playback running=%v pos=%d", p.Running(), p.Pos())
	}
	if !strings.Contains(p.View(), "DONE") {
		t.Error("finished view missing DONE")
	}

	p = update(p, key(" "))
	if !p.Running() || p.Pos() != 0 {
		t.Errorf("space at end: running=%v pos=%d", p.Running(), p.Pos())
	}
}

func TestPlayerRecording(t *testing.T) {
	res := runPreset(t, "walk", "2d")
	path := t.TempDir() + "/walk.gif"
	p, err := NewPlayer(res, PlayerOptions{Width: 30, Height: 10, GIFPath: path})
	if err != nil {
		t.Fatal(err)
	}
	p = update(p, key("g"))
	if !p.Recording() {
		t.Fatal("g did not start recording")
	}
	p = update(p, TickMsg{id: p.id})
	p = update(p, TickMsg{id: p.id})
	p = update(p, key("g"))
	if p.Recording() {
		t.Fatal("second g did not stop recording")
	}
	if !strings.Contains(p.View(), "saved 3 frames") {
		t.Errorf("status missing from view")
	}
}

func TestPlayerIgnoresForeignTicks(t *testing.T) {
	res := runPreset(t, "poisson", "default")
	old, err := NewPlayer(res, PlayerOptions{Width: 30, Height: 10})
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPlayer(res, PlayerOptions{Width: 30, Height: 10})
	if err != nil {
		t.Fatal(err)
	}
	next, cmd := p.Update(TickMsg{id: old.id})
	p = next.(Player)
	if p.Pos() != 0 || cmd != nil {
		t.Errorf("tick from another player moved pos to %d, cmd=%v", p.Pos(), cmd != nil)
	}
	if p = update(p, TickMsg{id: p.id}); p.Pos() != 1 {
		t.Errorf("own tick moved to %d, want 1", p.Pos())
	}
}
