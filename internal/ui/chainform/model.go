package chainform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"habitchain/internal/model"
	"habitchain/internal/theme"
)

// ChainSubmittedMsg is dispatched when the form completes. ID is empty
// for a newly created chain.
type ChainSubmittedMsg struct {
	ID       string
	Name     string
	HabitIDs []string
}

// ChainFormCancelMsg is dispatched when the user cancels the form.
type ChainFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name     string
	habitIDs []string
}

// Model is the Bubble Tea model for the chain create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	habits   []model.HabitWithStreak
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new chain form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// SetHabits sets the habits selectable in the form.
func (m *Model) SetHabits(habits []model.HabitWithStreak) {
	m.habits = habits
}

// StartCreate initializes the form for creating a new chain.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.name = ""
	m.fb.habitIDs = nil
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing chain.
// References to deleted habits are dropped up front so the selector
// only shows live options.
func (m *Model) StartEdit(chain model.Chain) tea.Cmd {
	m.editMode = true
	m.editID = chain.ID
	m.fb.name = chain.Name

	live := make(map[string]bool, len(m.habits))
	for _, h := range m.habits {
		live[h.ID] = true
	}
	m.fb.habitIDs = nil
	for _, id := range chain.HabitIDs {
		if live[id] {
			m.fb.habitIDs = append(m.fb.habitIDs, id)
		}
	}

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the chain form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return ChainFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the chain form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Chain"
	if m.editMode {
		titleText = "Edit Chain"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	opts := make([]huh.Option[string], len(m.habits))
	for i, h := range m.habits {
		label := h.Name
		if h.Icon != "" {
			label = h.Icon + " " + label
		}
		opts[i] = huh.NewOption(label, h.ID)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Morning routine").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Habits (up to %d)", model.MaxChainLength)).
				Options(opts...).
				Limit(model.MaxChainLength).
				Value(&m.fb.habitIDs),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := ChainSubmittedMsg{
		ID:       m.editID,
		Name:     strings.TrimSpace(m.fb.name),
		HabitIDs: m.fb.habitIDs,
	}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
