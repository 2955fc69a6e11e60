// Package tui is the interactive front end: a parameter form feeding
// fresh simulation runs. It edits configuration between runs only; a
// running loop is never retuned.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/metrics"
	"github.com/san-kum/thermosim/internal/sim"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type state int

const (
	stateForm state = iota
	stateResult
)

var paramInfo = map[string]string{
	"kp":              "proportional gain",
	"ki":              "integral gain",
	"setpoint":        "target temperature",
	"initial":         "starting temperature",
	"ambient":         "environment temperature",
	"ambient_step_at": "step index of the ambient change (-1 off)",
	"ambient_step_to": "ambient value after the change",
	"steps":           "run length in samples",
	"noise_std":       "process noise std dev",
}

type model struct {
	state state

	params      map[string]float64
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string
	status      string

	result *sim.Result

	width  int
	height int
}

func newModel() model {
	cfg := config.Default()
	return model{
		state: stateForm,
		params: map[string]float64{
			"kp":              cfg.Controller.Kp,
			"ki":              cfg.Controller.Ki,
			"setpoint":        cfg.Scenario.Setpoint,
			"initial":         cfg.Scenario.Initial,
			"ambient":         cfg.Scenario.Ambient,
			"ambient_step_at": float64(cfg.Scenario.AmbientStepAt),
			"ambient_step_to": cfg.Scenario.AmbientStepTo,
			"steps":           float64(cfg.Scenario.Steps),
			"noise_std":       cfg.Scenario.NoiseStd,
		},
		paramNames: []string{
			"kp", "ki", "setpoint", "initial", "ambient",
			"ambient_step_at", "ambient_step_to", "steps", "noise_std",
		},
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateForm:
		return m.formKey(msg)
	case stateResult:
		return m.resultKey(msg)
	}
	return m, nil
}

func (m model) formKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			// Non-numeric text never reaches the core: it is rejected here
			// and the old value stays.
			if val, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.params[m.paramNames[m.paramCursor]] = val
				m.status = ""
			} else {
				m.status = fmt.Sprintf("not a number: %q", m.editBuf)
			}
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = trimFloat(m.params[m.paramNames[m.paramCursor]])
	case "left", "h":
		m.params[m.paramNames[m.paramCursor]] -= m.adjustStep()
	case "right", "l":
		m.params[m.paramNames[m.paramCursor]] += m.adjustStep()
	case "s":
		if m.run() {
			m.state = stateResult
			return m, tea.ClearScreen
		}
	}
	return m, nil
}

func (m model) resultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "c", "escape":
		m.state = stateForm
		return m, tea.ClearScreen
	case "r":
		m.run()
		return m, tea.ClearScreen
	}
	return m, nil
}

// adjustStep keeps arrow-key nudges sensible for integer-valued fields.
func (m model) adjustStep() float64 {
	switch m.paramNames[m.paramCursor] {
	case "steps", "ambient_step_at":
		return 1.0
	default:
		return 0.1
	}
}

func (m *model) buildConfig() *config.Config {
	cfg := config.Default()
	cfg.Controller.Kp = m.params["kp"]
	cfg.Controller.Ki = m.params["ki"]
	cfg.Scenario.Setpoint = m.params["setpoint"]
	cfg.Scenario.Initial = m.params["initial"]
	cfg.Scenario.Ambient = m.params["ambient"]
	cfg.Scenario.AmbientStepAt = int(m.params["ambient_step_at"])
	cfg.Scenario.AmbientStepTo = m.params["ambient_step_to"]
	cfg.Scenario.Steps = int(m.params["steps"])
	cfg.Scenario.NoiseStd = m.params["noise_std"]
	return cfg
}

// run executes one simulation with a freshly constructed, reset
// controller and stores the result for the result view.
func (m *model) run() bool {
	cfg := m.buildConfig()
	if err := cfg.Validate(); err != nil {
		m.status = err.Error()
		return false
	}

	ctrl, err := cfg.NewController()
	if err != nil {
		m.status = err.Error()
		return false
	}

	driver := sim.NewDriver()
	driver.AddMetric(metrics.NewControlEffort())
	driver.AddMetric(metrics.NewOvershoot(cfg.Scenario.Setpoint, cfg.Scenario.Initial))
	driver.AddMetric(metrics.NewSettlingTime(0.05))

	res, err := driver.Run(ctrl, cfg.NoiseSource(), cfg.RunConfig())
	if err != nil {
		m.status = err.Error()
		return false
	}

	m.result = res
	m.status = ""
	return true
}

func (m model) View() string {
	switch m.state {
	case stateForm:
		return m.viewForm()
	case stateResult:
		return m.viewResult()
	}
	return ""
}

func (m model) viewForm() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("t h e r m o s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	for i, name := range m.paramNames {
		val := fmt.Sprintf("%10.2f", m.params[name])
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-16s", name)) + magenta.Render(val) +
				"  " + dim.Render(paramInfo[name]) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-16s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("      " + red.Render(m.status) + "\n\n")
	}
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s simulate  q quit") + "\n")

	return b.String()
}

func (m model) viewResult() string {
	if m.result == nil {
		return dim.Render("\n   no result\n")
	}

	res := m.result
	gw := m.width - 14
	if gw < 40 {
		gw = 40
	}

	var b strings.Builder
	b.WriteString("\n   " + cyan.Render("simulation result") + "\n\n")

	temps := asciigraph.PlotMany(
		[][]float64{res.Temps, res.Setpoints, res.Ambients},
		asciigraph.Height(8),
		asciigraph.Width(gw),
		asciigraph.Caption("temperature / setpoint / ambient"),
	)
	b.WriteString(indent(temps) + "\n\n")

	control := asciigraph.Plot(res.Controls,
		asciigraph.Height(6),
		asciigraph.Width(gw),
		asciigraph.Caption("control output"),
	)
	b.WriteString(indent(control) + "\n\n")

	b.WriteString("   " + dim.Render("final temp ") + white.Render(fmt.Sprintf("%.3f", res.FinalTemp())) +
		dim.Render("   final error ") + white.Render(fmt.Sprintf("%.4f", res.FinalError())) + "\n")
	for _, name := range []string{"control_effort", "overshoot", "settling_time"} {
		if v, ok := res.Metrics[name]; ok {
			b.WriteString("   " + dim.Render(name+" ") + white.Render(fmt.Sprintf("%.4f", v)) + "\n")
		}
	}

	b.WriteString("\n" + dim.Render("   r rerun  c configure  q quit") + "\n")
	return b.String()
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = "   " + lines[i]
	}
	return strings.Join(lines, "\n")
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RunInteractive starts the parameter form in the alternate screen.
func RunInteractive() error {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
