// Package tui shows a running inspiral as a live terminal view: the
// separation history as a graph, the orbit trails, and a merger banner.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/arvela/binsim/internal/body"
	"github.com/arvela/binsim/internal/viz"
)

// Frame is one sampled update from a running simulation.
type Frame struct {
	Step       int
	Time       float64
	Separation float64
	Orbit1     [2]float64
	Orbit2     [2]float64
	Merged     bool
	Done       bool
}

type frameMsg Frame
type closedMsg struct{}

// Model is the bubbletea model for the live view. Frames arrive on a channel
// fed by a sim.Observer running in another goroutine.
type Model struct {
	frames     <-chan Frame
	totalSteps int

	step       int
	t          float64
	separation float64
	history    []float64
	orbit1     [][2]float64
	orbit2     [][2]float64
	merged     bool
	mergedAt   float64
	done       bool

	width, height int
}

func NewModel(frames <-chan Frame, totalSteps int) Model {
	return Model{
		frames:     frames,
		totalSteps: totalSteps,
		history:    make([]float64, 0, 256),
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd { return waitFrame(m.frames) }

func waitFrame(ch <-chan Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return frameMsg(f)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case frameMsg:
		m.step = msg.Step
		m.t = msg.Time
		if msg.Separation > 0 {
			m.separation = msg.Separation
			m.history = append(m.history, msg.Separation)
			m.orbit1 = append(m.orbit1, msg.Orbit1)
			m.orbit2 = append(m.orbit2, msg.Orbit2)
		}
		if msg.Merged && !m.merged {
			m.merged = true
			m.mergedAt = msg.Time
		}
		if msg.Done {
			m.done = true
			return m, nil
		}
		return m, waitFrame(m.frames)
	case closedMsg:
		m.done = true
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(viz.Title.Render("binsim — binary inspiral"))
	sb.WriteByte('\n')

	status := viz.StatusSeparate.Render("separate")
	if m.merged {
		status = viz.StatusMerged.Render(fmt.Sprintf("merged at t=%.3f", m.mergedAt))
	}
	sb.WriteString(fmt.Sprintf("%s  step %s  t=%s  d=%s\n",
		status,
		viz.MetricValue.Render(fmt.Sprintf("%d/%d", m.step, m.totalSteps)),
		viz.MetricValue.Render(fmt.Sprintf("%.3f", m.t)),
		viz.MetricValue.Render(fmt.Sprintf("%.4f", m.separation)),
	))

	graphW := m.width - 12
	if graphW < 20 {
		graphW = 20
	}
	if len(m.history) >= 2 {
		data := m.history
		if len(data) > graphW {
			data = data[len(data)-graphW:]
		}
		sb.WriteString(viz.Panel.Render(asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Caption("separation"))))
		sb.WriteByte('\n')
	}

	orbitH := m.height - 16
	if orbitH >= 4 && len(m.orbit1) >= 2 {
		canvas := viz.PlotOrbits(m.orbit1, m.orbit2, graphW/2, orbitH)
		sb.WriteString(viz.Panel.Render(strings.TrimRight(canvas.String(), "\n")))
		sb.WriteByte('\n')
	}

	if m.done {
		sb.WriteString(viz.Subtle.Render("run finished — press q to exit"))
	} else {
		sb.WriteString(viz.Subtle.Render("press q to quit"))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// EffectView is the read-only slice of the inspiral effect the live view
// samples.
type EffectView interface {
	Separate() bool
	Separation() float64
	Centers() (body.Vec, body.Vec)
}

// Observer samples a running simulation into the live view's channel. It
// drops frames rather than stall the step loop.
type Observer struct {
	frames chan<- Frame
	every  int
	effect EffectView
}

func NewObserver(frames chan<- Frame, every int, effect EffectView) *Observer {
	if every < 1 {
		every = 1
	}
	return &Observer{frames: frames, every: every, effect: effect}
}

func (o *Observer) OnStep(p *body.Particles, step int, t float64) {
	if step%o.every != 0 {
		return
	}
	com1, com2 := o.effect.Centers()
	f := Frame{
		Step:       step,
		Time:       t,
		Separation: o.effect.Separation(),
		Orbit1:     [2]float64{com1[0], com1[1]},
		Orbit2:     [2]float64{com2[0], com2[1]},
		Merged:     !o.effect.Separate(),
	}
	select {
	case o.frames <- f:
	default:
	}
}
