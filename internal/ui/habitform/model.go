package habitform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"habitchain/internal/model"
	"habitchain/internal/theme"
)

// HabitSubmittedMsg is dispatched when the form completes. ID is empty
// for a newly created habit.
type HabitSubmittedMsg struct {
	Habit model.Habit
}

// HabitFormCancelMsg is dispatched when the user cancels the form.
type HabitFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name  string
	icon  string
	color string
}

// Model is the Bubble Tea model for the habit create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new habit form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{color: model.ColorBlue},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new habit.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.name = ""
	m.fb.icon = ""
	m.fb.color = model.ColorBlue
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing habit.
func (m *Model) StartEdit(habit model.Habit) tea.Cmd {
	m.editMode = true
	m.editID = habit.ID
	m.fb.name = habit.Name
	m.fb.icon = habit.Icon
	m.fb.color = habit.Color
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the habit form.
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
		return m, func() tea.Msg { return HabitFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the habit form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Habit"
	if m.editMode {
		titleText = "Edit Habit"
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
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Drink water").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title("Icon").
				Placeholder("Emoji (optional)").
				Value(&m.fb.icon),
			huh.NewSelect[string]().
				Title("Color").
				Options(
					huh.NewOption("Blue", model.ColorBlue),
					huh.NewOption("Purple", model.ColorPurple),
					huh.NewOption("Coral", model.ColorCoral),
				).
				Value(&m.fb.color),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	habit := model.Habit{
		ID:    m.editID,
		Name:  strings.TrimSpace(m.fb.name),
		Icon:  strings.TrimSpace(m.fb.icon),
		Color: m.fb.color,
	}
	return func() tea.Msg { return HabitSubmittedMsg{Habit: habit} }
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
