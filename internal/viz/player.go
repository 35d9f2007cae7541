package viz

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/stochsim/internal/experiment"
)

// TickMsg advances the player that scheduled it. Ticks left over from a
// replaced player are dropped.
type TickMsg struct {
	Time time.Time
	id   uint64
}

var playerIDs atomic.Uint64

type PlayerOptions struct {
	Title   string
	FPS     int
	Theme   string
	GIFPath string
	Width   int
	Height  int
}

// Player is a bubbletea model that animates the frames of one result.
type Player struct {
	id        uint64
	result    *experiment.Result
	frames    []*Canvas
	samples   []int
	title     string
	fps       int
	theme     Theme
	pos       int
	running   bool
	recording bool
	captured  []*image.Paletted
	gifPath   string
	status    string
	showHelp  bool
}

// NewPlayer renders every frame of r up front. The player starts running
// from the first frame.
func NewPlayer(r *experiment.Result, opts PlayerOptions) (Player, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		tw, th := TerminalSize()
		opts.Width, opts.Height = max(tw-50, 20), max(th-4, 8)
	}
	frames, err := Frames(r, opts.Width, opts.Height)
	if err != nil {
		return Player{}, err
	}
	if opts.FPS <= 0 {
		opts.FPS = 10
	}
	if opts.GIFPath == "" {
		opts.GIFPath = r.Process + ".gif"
	}
	if opts.Title == "" {
		opts.Title = r.Process
	}
	return Player{
		id:      playerIDs.Add(1),
		result:  r,
		frames:  frames,
		samples: sampleIndices(frameCount(r), MaxFrames),
		title:   opts.Title,
		fps:     opts.FPS,
		theme:   GetTheme(opts.Theme),
		running: true,
		gifPath: opts.GIFPath,
	}, nil
}

func (p Player) Pos() int          { return p.pos }
func (p Player) Len() int          { return len(p.frames) }
func (p Player) Running() bool     { return p.running }
func (p Player) Recording() bool   { return p.recording }
func (p Player) ThemeName() string { return p.theme.Name }
func (p Player) Frame() *Canvas    { return p.frames[p.pos] }

func (p Player) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(p.fps), func(t time.Time) tea.Msg { return TickMsg{Time: t, id: p.id} })
}

func (p Player) Init() tea.Cmd { return p.tick() }

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if p.recording {
				p.stopRecording()
			}
			return p, tea.Quit
		case " ", "space":
			if !p.running && p.pos == len(p.frames)-1 {
				p.pos = 0
			}
			p.running = !p.running
		case "r":
			p.pos, p.running = 0, true
		case "[":
			p.scrub(-1)
		case "]":
			p.scrub(1)
		case "t":
			p.theme = NextTheme(p.theme.Name)
		case "g":
			if p.recording {
				p.stopRecording()
			} else {
				p.recording, p.captured, p.status = true, nil, ""
				p.capture()
			}
		case "?":
			p.showHelp = !p.showHelp
		}
	case TickMsg:
		if msg.id != p.id {
			return p, nil
		}
		if p.running {
			if p.pos < len(p.frames)-1 {
				p.pos++
				if p.recording {
					p.capture()
				}
			} else {
				p.running = false
			}
		}
		return p, p.tick()
	}
	return p, nil
}

func (p *Player) scrub(dir int) {
	p.running = false
	p.pos = min(max(p.pos+dir, 0), len(p.frames)-1)
	if p.recording {
		p.capture()
	}
}

func (p *Player) capture() {
	r, g, b := parseHex(string(p.theme.Primary))
	p.captured = append(p.captured, Rasterize(p.frames[p.pos], color.RGBA{uint8(r), uint8(g), uint8(b), 255}))
}

func (p *Player) stopRecording() {
	p.recording = false
	defer func() { p.captured = nil }()
	if len(p.captured) == 0 {
		return
	}
	f, err := os.Create(p.gifPath)
	if err != nil {
		p.status = "gif: " + err.Error()
		return
	}
	defer f.Close()
	if err := EncodeGIF(f, p.captured, 100/p.fps); err != nil {
		p.status = "gif: " + err.Error()
		return
	}
	p.status = fmt.Sprintf("saved %d frames to %s", len(p.captured), p.gifPath)
}

// chartValues is the plotted history up to the current frame.
func (p Player) chartValues() ([]float64, string) {
	upto := p.samples[p.pos]
	switch p.result.Process {
	case "poisson":
		return p.result.Timeline[:upto], "arrival times"
	default:
		series := p.result.Series()
		if len(series) == 0 {
			return nil, ""
		}
		return series[0].Values[:upto+1], series[0].Name
	}
}

func (p Player) View() string {
	st := stylesFor(p.theme)
	var s strings.Builder

	s.WriteString(st.title.Render(GradientText(strings.ToUpper(p.title), p.theme.Primary, p.theme.Secondary)) + "\n")
	if p.recording {
		s.WriteString(st.recording.Render("● REC") + "  ")
	}
	if p.running {
		s.WriteString(st.running.Render("RUNNING"))
	} else if p.pos == len(p.frames)-1 {
		s.WriteString(st.paused.Render("DONE"))
	} else {
		s.WriteString(st.paused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	s.WriteString(st.label.Render("Sample") + st.value.Render(fmt.Sprintf("%d / %d", p.samples[p.pos], p.samples[len(p.samples)-1])) + "\n")
	s.WriteString(st.label.Render("Seed") + st.value.Render(fmt.Sprintf("%d", p.result.Seed)) + "\n")
	frac := 1.0
	if len(p.frames) > 1 {
		frac = float64(p.pos) / float64(len(p.frames)-1)
	}
	s.WriteString(st.selected.Render(ProgressBar(frac, 24)) + "\n\n")

	if values, name := p.chartValues(); len(values) > 1 {
		chart := asciigraph.Plot(values, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption(name))
		s.WriteString(st.value.Render(chart) + "\n\n")
	}

	keys := make([]string, 0, len(p.result.Metrics))
	for k := range p.result.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s.WriteString(st.label.Render(k) + st.value.Render(fmt.Sprintf("%.4g", p.result.Metrics[k])) + "\n")
	}

	if p.status != "" {
		s.WriteString("\n" + st.selected.Render(p.status) + "\n")
	}
	s.WriteString(st.hint.Render(Separator(24) + "\nSP:Pause R:Restart Q:Quit\nT:Theme  G:Record  ?:Help\n[ ]:Step"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(p.frames[p.pos].String()), st.panel.Render(s.String()))
	if p.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `
  space   pause / resume (restarts when finished)
  r       restart from the first sample
  [ ]     step backward / forward
  t       cycle colour theme
  g       start / stop GIF recording
  ?       toggle this help
  q       quit
`

// RunPlayer runs p in the alternate screen until the user quits.
func RunPlayer(p Player) error {
	_, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}
