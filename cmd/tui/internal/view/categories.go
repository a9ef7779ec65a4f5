package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dapurlink/backoffice/internal/api"
	"github.com/dapurlink/backoffice/internal/category"
	"github.com/dapurlink/backoffice/internal/filter"
)

type categoriesState int

const (
	categoriesStateBrowse categoriesState = iota
	categoriesStateSearch
	categoriesStateForm
	categoriesStateConfirmDelete
)

type CategoriesModel struct {
	CommonModel
	store *category.Store

	state    categoriesState
	table    table.Model
	search   textinput.Model
	criteria filter.CategoryCriteria
	visible  []category.Category

	cform    *category.Form
	form     *huh.Form
	deleteID int64

	loading bool
	errMsg  string
	status  string
}

func NewCategoriesModel(store *category.Store, previewDir string) CategoriesModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Type", Width: 10},
		{Title: "Description", Width: 36},
		{Title: "Status", Width: 10},
		{Title: "Self-order", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "search name or description"
	search.CharLimit = 64

	return CategoriesModel{
		store:    store,
		table:    t,
		search:   search,
		criteria: filter.NewCategoryCriteria(),
		cform:    category.NewForm(previewDir),
		loading:  true,
	}
}

func (m CategoriesModel) Title() string { return "Menu Categories" }

func (m CategoriesModel) ShortHelp() string {
	switch m.state {
	case categoriesStateForm:
		return "Navigate form | Esc: cancel"
	case categoriesStateConfirmDelete:
		return "y: delete | n: keep"
	case categoriesStateSearch:
		return "Enter: apply | Esc: clear"
	}

	return "Esc: back | a: add | e: edit | d: delete | t: toggle | /: search | s: status | o: sort | c: clear | r: refresh"
}

func (m CategoriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

type categoriesLoadedMsg struct{ err error }

type categoryMutatedMsg struct {
	err    error
	action string
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return SessionExpiredMsg{} }
			}

			m.errMsg = msg.err.Error()

			return m, nil
		}

		m.errMsg = ""
		m.refreshTable()

		return m, nil

	case categoryMutatedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return SessionExpiredMsg{} }
			}

			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Category %s", msg.action)
		}

		m.state = categoriesStateBrowse
		m.form = nil
		m.cform.Close()
		m.table.Focus()
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case categoriesStateBrowse:
		return m.updateBrowse(msg)
	case categoriesStateSearch:
		return m.updateSearch(msg)
	case categoriesStateForm:
		return m.updateForm(msg)
	case categoriesStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m CategoriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = categoriesStateSearch
			m.table.Blur()
			m.search.Focus()

			return m, textinput.Blink
		case "s":
			m.criteria.Status = nextStatus(m.criteria.Status)
			m.refreshTable()

			return m, nil
		case "o":
			m.criteria.SortBy = nextCategorySort(m.criteria.SortBy)
			m.refreshTable()

			return m, nil
		case "c":
			m.criteria.Reset()
			m.search.SetValue("")
			m.refreshTable()

			return m, nil
		case "a":
			return m.openForm(nil)
		case "e":
			if c, ok := m.selected(); ok {
				return m.openForm(&c)
			}

			return m, nil
		case "t":
			if c, ok := m.selected(); ok {
				return m, m.toggleCmd(c.ID)
			}

			return m, nil
		case "d":
			if c, ok := m.selected(); ok {
				m.deleteID = c.ID
				m.state = categoriesStateConfirmDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoriesModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.criteria.Search = m.search.Value()
			m.state = categoriesStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		case "esc":
			m.search.SetValue("")
			m.criteria.Search = ""
			m.state = categoriesStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m CategoriesModel) openForm(existing *category.Category) (tea.Model, tea.Cmd) {
	if existing != nil {
		m.cform.OpenEdit(*existing)
	} else {
		m.cform.OpenNew()
	}

	name := m.cform.Name
	description := m.cform.Description
	active := m.cform.Active
	selfOrder := m.cform.SelfOrderVisible

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&description),

			huh.NewConfirm().
				Key("active").
				Title("Visible to customers?").
				Value(&active),

			huh.NewConfirm().
				Key("self_order").
				Title("Show in self-order?").
				Value(&selfOrder),

			huh.NewInput().
				Key("image").
				Title("Image file (optional)").
				Placeholder("/path/to/image.png"),
		),
	).WithWidth(48).WithShowHelp(false)

	m.state = categoriesStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = categoriesStateBrowse
			m.form = nil
			m.cform.Close()
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.cform.Set("name", m.form.GetString("name"))
	m.cform.Set("description", m.form.GetString("description"))
	m.cform.SetActive(m.form.GetBool("active"))
	m.cform.SetSelfOrderVisible(m.form.GetBool("self_order"))

	if image := strings.TrimSpace(m.form.GetString("image")); image != "" {
		if err := m.cform.StageImage(image); err != nil {
			m.status = fmt.Sprintf("Image rejected: %v", err)
		}
	}

	return m, m.saveCmd(m.cform.CategoryID(), m.cform.Params())
}

func (m CategoriesModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			id := m.deleteID
			m.deleteID = 0

			return m, m.deleteCmd(id)
		case "n", "esc":
			m.deleteID = 0
			m.state = categoriesStateBrowse

			return m, nil
		}
	}

	return m, nil
}

func (m CategoriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading categories...")
	}

	if m.errMsg != "" {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %s", m.errMsg))
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [o] Sort: %s",
		highlight(string(m.criteria.Status)),
		highlight(string(m.criteria.SortBy)),
	)
	if m.criteria.Search != "" {
		header += fmt.Sprintf(" | Search: %s", highlight(m.criteria.Search))
	}

	if m.state == categoriesStateSearch {
		header = "Search: " + m.search.View()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch m.state {
	case categoriesStateForm:
		title := "Add Category"
		if m.cform.Mode() == category.ModeEdit {
			title = "Edit Category"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(52).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	case categoriesStateConfirmDelete:
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).
			Render("Delete this category? [y/n]")
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m CategoriesModel) selected() (category.Category, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return category.Category{}, false
	}

	return m.visible[idx], true
}

func (m *CategoriesModel) refreshTable() {
	m.visible = m.criteria.Apply(m.store.Items())

	rows := make([]table.Row, 0, len(m.visible))
	for _, c := range m.visible {
		selfOrder := "no"
		if c.SelfOrderVisible {
			selfOrder = "yes"
		}

		rows = append(rows, table.Row{
			c.Name,
			string(c.Type),
			c.Description,
			activeLabel(c.Active),
			selfOrder,
		})
	}

	m.table.SetRows(rows)
}

func (m CategoriesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return categoriesLoadedMsg{err: m.store.Load(ctx)}
	}
}

func (m CategoriesModel) saveCmd(id int64, params category.SaveParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		if id != 0 {
			return categoryMutatedMsg{err: m.store.Update(ctx, id, params), action: "updated"}
		}

		return categoryMutatedMsg{err: m.store.Create(ctx, params), action: "created"}
	}
}

func (m CategoriesModel) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return categoryMutatedMsg{err: m.store.Delete(ctx, id), action: "deleted"}
	}
}

func (m CategoriesModel) toggleCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return categoryMutatedMsg{err: m.store.Toggle(ctx, id), action: "toggled"}
	}
}

func nextStatus(s filter.Status) filter.Status {
	switch s {
	case filter.StatusAll:
		return filter.StatusActive
	case filter.StatusActive:
		return filter.StatusInactive
	default:
		return filter.StatusAll
	}
}

func nextCategorySort(s filter.CategorySort) filter.CategorySort {
	switch s {
	case filter.CategoriesByName:
		return filter.CategoriesByType
	case filter.CategoriesByType:
		return filter.CategoriesByCreated
	default:
		return filter.CategoriesByName
	}
}

func highlight(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
