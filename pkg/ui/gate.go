package ui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vanderheijden86/glossnet/pkg/access"
	"github.com/vanderheijden86/glossnet/pkg/debug"
)

const wrongPasskeyMsg = "Incorrect passkey"

// GateModel asks for the passkey before the viewer opens.
type GateModel struct {
	gate  *access.Gate
	theme Theme
	form  *huh.Form
	// value is shared with the form field, so it must survive copies of
	// the model.
	value *string

	errMsg          string
	warnMsg         string
	width           int
	height          int
	granted         bool
	cancelRequested bool
}

// NewGateModel creates the passkey prompt for gate.
func NewGateModel(gate *access.Gate, theme Theme) GateModel {
	m := GateModel{gate: gate, theme: theme, value: new(string)}
	m.form = m.newForm()
	return m
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (m GateModel) newForm() *huh.Form {
	*m.value = ""
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Passkey").
				Description("This glossary is shared with participants only.").
				EchoMode(huh.EchoModePassword).
				Value(m.value),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	if m.width > 0 {
		form = form.WithWidth(clamp(m.width-4, 20, 60))
	}
	return form
}

// Init starts the form.
func (m GateModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update forwards every message to the form; huh relies on its own internal
// messages to advance between fields.
func (m GateModel) Update(msg tea.Msg) (GateModel, tea.Cmd) {
	if m.granted || m.cancelRequested {
		return m, nil
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submit(*m.value)
	case huh.StateAborted:
		m.cancelRequested = true
		return m, nil
	}
	return m, cmd
}

// submit checks input against the gate. A wrong passkey clears the field and
// shows an error.
func (m GateModel) submit(input string) (GateModel, tea.Cmd) {
	ok, err := m.gate.Try(input)
	if err != nil {
		// The gate is open for this run even though the grant was not saved.
		debug.Log("ui: %v", err)
		m.warnMsg = "Access granted, but it could not be remembered"
	}
	if ok {
		m.granted = true
		m.errMsg = ""
		return m, nil
	}
	m.errMsg = wrongPasskeyMsg
	m.form = m.newForm()
	return m, m.form.Init()
}

// IsGranted reports whether the passkey was accepted.
func (m GateModel) IsGranted() bool { return m.granted }

// IsCancelRequested reports whether the user aborted the prompt.
func (m GateModel) IsCancelRequested() bool { return m.cancelRequested }

// Warning returns a non-fatal message to carry into the viewer.
func (m GateModel) Warning() string { return m.warnMsg }

func (m GateModel) View() string {
	t := m.theme
	title := t.PrimaryBold.Render("GLOSSNET")
	lines := []string{title, "", m.form.View()}
	if m.errMsg != "" {
		lines = append(lines, t.ErrorText.Render("✗ "+m.errMsg))
	}
	lines = append(lines, "", t.MutedText.Render("enter submit • ctrl+c quit"))

	box := t.FocusedPanel.Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
