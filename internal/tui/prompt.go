// Package tui provides the interactive prompts used during onboarding
// and updates: free-text input with validation, yes/no confirmation and
// option selection.
package tui

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCanceled is returned when the user aborts a prompt with ctrl+c.
var ErrCanceled = errors.New("prompt canceled")

// Validator rejects input before a prompt is allowed to submit.
type Validator func(string) error

var emailPattern = regexp.MustCompile(`^([a-zA-Z0-9_\-.]+)@([a-zA-Z0-9_\-.]+)\.([a-zA-Z]{2,5})$`)

// ValidEmail rejects anything that does not look like a mail address.
func ValidEmail(input string) error {
	if !emailPattern.MatchString(input) {
		return errors.New("this is not a mail address")
	}
	return nil
}

// NonEmpty rejects blank input.
func NonEmpty(input string) error {
	if input == "" {
		return errors.New("a value is required")
	}
	return nil
}

type inputModel struct {
	title    string
	input    textinput.Model
	validate Validator
	errText  string
	done     bool
	canceled bool
}

func newInputModel(title, initial string, validate Validator) inputModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 200
	ti.SetValue(initial)

	return inputModel{
		title:    title,
		input:    ti,
		validate: validate,
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			if m.validate != nil {
				if err := m.validate(m.input.Value()); err != nil {
					m.errText = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.errText = ""
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	view := titleStyle.Render(m.title) + "\n" + m.input.View()
	if m.errText != "" {
		view += "\n" + errorTextStyle.Render(m.errText)
	}
	return view + "\n" + helpStyle.Render("Enter: submit • Ctrl+C: cancel")
}

// Input asks for a single line of text, prefilled with initial. A nil
// validator accepts anything.
func Input(title, initial string, validate Validator) (string, error) {
	p := tea.NewProgram(newInputModel(title, initial, validate))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	m := final.(inputModel)
	if m.canceled {
		return "", ErrCanceled
	}
	return m.input.Value(), nil
}

type confirmModel struct {
	question string
	answer   bool
	done     bool
	canceled bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.answer = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return titleStyle.Render(m.question) + helpStyle.Render("y: yes • n: no • Esc: cancel")
}

// Confirm asks a yes/no question.
func Confirm(question string) (bool, error) {
	p := tea.NewProgram(confirmModel{question: question})
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running prompt: %w", err)
	}

	m := final.(confirmModel)
	if m.canceled {
		return false, ErrCanceled
	}
	return m.answer, nil
}

type selectModel struct {
	title    string
	options  []string
	cursor   int
	done     bool
	canceled bool
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done || m.canceled {
		return ""
	}

	view := titleStyle.Render(m.title) + "\n"
	for i, opt := range m.options {
		if i == m.cursor {
			view += selectedStyle.Render("> "+opt) + "\n"
		} else {
			view += "  " + opt + "\n"
		}
	}
	return view + helpStyle.Render("↑/↓: navigate • Enter: select • Esc: cancel")
}

// Select picks one of options and returns its index.
func Select(title string, options []string) (int, error) {
	p := tea.NewProgram(selectModel{title: title, options: options})
	final, err := p.Run()
	if err != nil {
		return 0, fmt.Errorf("running prompt: %w", err)
	}

	m := final.(selectModel)
	if m.canceled {
		return 0, ErrCanceled
	}
	return m.cursor, nil
}
