// Package authview renders the sign-in screen: a credentials form
// with sign-in, sign-up, and password-reset modes.
package authview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"habitchain/internal/theme"
)

// Mode selects which auth operation the form performs.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
	ModeReset
)

// SubmitMsg carries the completed form back to the app.
type SubmitMsg struct {
	Mode     Mode
	Email    string
	Password string
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	mode     Mode
	email    string
	password string
}

// Model is the Bubble Tea model for the auth screen.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	status string
	width  int
	height int
}

// New creates a new auth view model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the credentials form.
func (m *Model) Start() tea.Cmd {
	m.fb.mode = ModeSignIn
	m.fb.password = ""
	m.status = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetStatus shows a one-line message under the form, e.g. an auth
// failure or a "confirmation email sent" notice.
func (m *Model) SetStatus(status string) {
	m.status = status
}

// Update handles messages for the auth view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		submit := SubmitMsg{
			Mode:     m.fb.mode,
			Email:    strings.TrimSpace(m.fb.email),
			Password: m.fb.password,
		}
		// Rebuild so the form is usable again if the attempt fails.
		cmd := m.Start()
		m.fb.email = submit.Email
		m.fb.mode = submit.Mode
		return m, tea.Batch(cmd, func() tea.Msg { return submit })
	}

	return m, cmd
}

// View renders the auth screen.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{
		titleStyle.Render("habitchain"),
		m.form.View(),
	}
	if m.status != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.status))
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Mode]().
				Title("Action").
				Options(
					huh.NewOption("Sign in", ModeSignIn),
					huh.NewOption("Sign up", ModeSignUp),
					huh.NewOption("Reset password", ModeReset),
				).
				Value(&m.fb.mode),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
	).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, "@") {
		return fmt.Errorf("a valid email is required")
	}
	return nil
}
