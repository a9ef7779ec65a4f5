package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dapurlink/backoffice/internal/auth"
)

// LoggedInMsg carries the fresh session up to the root model.
type LoggedInMsg struct {
	Session *auth.Session
}

type LoginModel struct {
	CommonModel
	manager *auth.Manager

	form       *huh.Form
	email      string
	password   string
	submitting bool
	errMsg     string
}

func NewLoginModel(manager *auth.Manager) LoginModel {
	m := LoginModel{manager: manager}
	m.form = m.newForm()

	return m
}

func (m LoginModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Title() string     { return "Login" }
func (m LoginModel) ShortHelp() string { return "Enter: submit | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

type loginResultMsg struct {
	session *auth.Session
	err     error
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Login failed: %v", msg.err)
			m.form = m.newForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{Session: msg.session} }

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.submitting = true
	m.errMsg = ""
	email := m.form.GetString("email")
	password := m.form.GetString("password")

	return m, func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		session, err := m.manager.Login(ctx, email, password)

		return loginResultMsg{session: session, err: err}
	}
}

func (m LoginModel) View() string {
	if m.submitting {
		return lipgloss.NewStyle().Padding(2).Render("Signing in...")
	}

	content := "Back Office Login\n\n" + m.form.View()
	if m.errMsg != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.errMsg)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}
