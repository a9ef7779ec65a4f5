package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dapurlink/backoffice/internal/api"
	"github.com/dapurlink/backoffice/internal/filter"
	"github.com/dapurlink/backoffice/internal/menu"
)

type productsState int

const (
	productsStateBrowse productsState = iota
	productsStateSearch
	productsStateForm
	productsStateConfirmDelete
	productsStateVariants
	productsStateVariantForm
	productsStateConfirmVariantDelete
)

type ProductsModel struct {
	CommonModel
	store    *menu.Store
	svc      *menu.Service
	variants *menu.VariantStore

	state    productsState
	table    table.Model
	search   textinput.Model
	criteria filter.ProductCriteria
	visible  []menu.Product

	pform *menu.ProductForm
	form  *huh.Form

	variantTable    table.Model
	variantProduct  menu.Product
	vform           *menu.VariantForm
	variantForm     *huh.Form
	deleteID        int64
	deleteVariantID int64

	loading bool
	errMsg  string
	status  string
}

func NewProductsModel(store *menu.Store, svc *menu.Service, variants *menu.VariantStore, previewDir string) ProductsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Category", Width: 14},
			{Title: "Price", Width: 22},
			{Title: "Stock", Width: 6},
			{Title: "Status", Width: 10},
			{Title: "Variants", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styleTable(&t)

	vt := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Price", Width: 14},
			{Title: "Status", Width: 10},
		}),
		table.WithHeight(10),
	)
	styleTable(&vt)

	search := textinput.New()
	search.Placeholder = "search name, description or category"
	search.CharLimit = 64

	return ProductsModel{
		store:        store,
		svc:          svc,
		variants:     variants,
		table:        t,
		variantTable: vt,
		search:       search,
		criteria:     filter.NewProductCriteria(),
		pform:        menu.NewProductForm(previewDir),
		vform:        menu.NewVariantForm(),
		loading:      true,
	}
}

func styleTable(t *table.Model) {
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
}

func (m ProductsModel) Title() string { return "Menu Items" }

func (m ProductsModel) ShortHelp() string {
	switch m.state {
	case productsStateForm, productsStateVariantForm:
		return "Navigate form | Esc: cancel"
	case productsStateConfirmDelete, productsStateConfirmVariantDelete:
		return "y: delete | n: keep"
	case productsStateSearch:
		return "Enter: apply | Esc: clear"
	case productsStateVariants:
		return "Esc: back | a: add | e: edit | d: delete | t: toggle"
	}

	return "Esc: back | a: add | e: edit | v: variants | d: delete | t: toggle | /: search | s: status | p: price | o: sort | c: clear | r: refresh"
}

func (m ProductsModel) Init() tea.Cmd {
	return m.loadCmd()
}

type productsLoadedMsg struct{ err error }

type productSavedMsg struct {
	saved *menu.Product
	err   error
}

type productMutatedMsg struct {
	err    error
	action string
}

type variantsFetchedMsg struct{ err error }

type variantMutatedMsg struct {
	err    error
	action string
}

func (m ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
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

	case productSavedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return SessionExpiredMsg{} }
			}

			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = productsStateBrowse
			m.form = nil
			m.pform.Close()
			m.table.Focus()

			return m, nil
		}

		m.store.Apply(*msg.saved)
		m.status = fmt.Sprintf("Saved %q, press v for variants", msg.saved.Name)
		m.refreshTable()

		m.form = nil
		m.pform.Close()
		m.state = productsStateBrowse
		m.table.Focus()

		return m, nil

	case productMutatedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return SessionExpiredMsg{} }
			}

			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Product %s", msg.action)
		}

		m.state = productsStateBrowse
		m.table.Focus()
		m.refreshTable()

		return m, nil

	case variantsFetchedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return SessionExpiredMsg{} }
			}

			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.refreshVariantTable()

		return m, nil

	case variantMutatedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, func() tea.Msg { return SessionExpiredMsg{} }
			}

			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Variant %s", msg.action)
		}

		m.state = productsStateVariants
		m.variantForm = nil
		m.vform.Close()
		m.refreshVariantTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case productsStateBrowse:
		return m.updateBrowse(msg)
	case productsStateSearch:
		return m.updateSearch(msg)
	case productsStateForm:
		return m.updateForm(msg)
	case productsStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case productsStateVariants:
		return m.updateVariants(msg)
	case productsStateVariantForm:
		return m.updateVariantForm(msg)
	case productsStateConfirmVariantDelete:
		return m.updateConfirmVariantDelete(msg)
	}

	return m, nil
}

func (m ProductsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = productsStateSearch
			m.table.Blur()
			m.search.Focus()

			return m, textinput.Blink
		case "s":
			m.criteria.Status = nextStatus(m.criteria.Status)
			m.refreshTable()

			return m, nil
		case "p":
			m.criteria.Price = nextPriceBucket(m.criteria.Price)
			m.refreshTable()

			return m, nil
		case "o":
			m.criteria.SortBy = nextProductSort(m.criteria.SortBy)
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
			if p, ok := m.selected(); ok {
				return m.openForm(&p)
			}

			return m, nil
		case "v":
			if p, ok := m.selected(); ok {
				return m.openVariants(p)
			}

			return m, nil
		case "t":
			if p, ok := m.selected(); ok {
				return m, m.toggleCmd(p.ID)
			}

			return m, nil
		case "d":
			if p, ok := m.selected(); ok {
				m.deleteID = p.ID
				m.state = productsStateConfirmDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ProductsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.criteria.Search = m.search.Value()
			m.state = productsStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		case "esc":
			m.search.SetValue("")
			m.criteria.Search = ""
			m.state = productsStateBrowse
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

func (m ProductsModel) openForm(existing *menu.Product) (tea.Model, tea.Cmd) {
	categories := m.store.Categories()
	if len(categories) == 0 {
		m.status = "Create a category before adding products"
		return m, nil
	}

	if existing != nil {
		m.pform.OpenEdit(*existing)
	} else {
		m.pform.OpenNew(categories)
	}

	name := m.pform.Name
	description := m.pform.Description
	price := numberValue(m.pform.Price)
	stock := numberValue(m.pform.Stock)
	active := m.pform.Active
	categoryID := m.pform.CategoryID

	options := make([]huh.Option[int64], 0, len(categories))
	for _, c := range categories {
		label := c.Name
		if !c.Active {
			label += " (inactive)"
		}

		options = append(options, huh.NewOption(label, c.ID))
	}

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
				Value(&description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("price").
				Title("Price (Rp)").
				Value(&price).
				Validate(validatePositiveNumber),

			huh.NewInput().
				Key("stock").
				Title("Stock (blank = untracked)").
				Value(&stock),

			huh.NewSelect[int64]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&categoryID),

			huh.NewConfirm().
				Key("active").
				Title("Available for sale?").
				Value(&active),

			huh.NewInput().
				Key("image").
				Title("Image file (optional)").
				Placeholder("/path/to/image.png"),
		),
	).WithWidth(52).WithShowHelp(false)

	m.state = productsStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProductsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = productsStateBrowse
			m.form = nil
			m.pform.Close()
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

	m.pform.Set("name", m.form.GetString("name"))
	m.pform.Set("description", m.form.GetString("description"))
	m.pform.Set("price", m.form.GetString("price"))
	m.pform.Set("stock", m.form.GetString("stock"))
	m.pform.SetCategory(m.form.Get("category").(int64))
	m.pform.SetActive(m.form.GetBool("active"))

	if image := strings.TrimSpace(m.form.GetString("image")); image != "" {
		if err := m.pform.StageImage(image); err != nil {
			m.status = fmt.Sprintf("Image rejected: %v", err)
		}
	}

	return m, m.saveCmd()
}

func (m ProductsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			id := m.deleteID
			m.deleteID = 0

			return m, m.deleteCmd(id)
		case "n", "esc":
			m.deleteID = 0
			m.state = productsStateBrowse

			return m, nil
		}
	}

	return m, nil
}

func (m ProductsModel) openVariants(p menu.Product) (tea.Model, tea.Cmd) {
	m.variantProduct = p
	m.variants.SetProduct(p.ID)
	m.state = productsStateVariants
	m.table.Blur()
	m.variantTable.Focus()
	m.refreshVariantTable()

	return m, m.fetchVariantsCmd()
}

func (m ProductsModel) updateVariants(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = productsStateBrowse
			m.variantTable.Blur()
			m.table.Focus()

			return m, m.loadCmd()
		case "a":
			return m.openVariantForm(nil)
		case "e":
			if v, ok := m.selectedVariant(); ok {
				return m.openVariantForm(&v)
			}

			return m, nil
		case "t":
			if v, ok := m.selectedVariant(); ok {
				return m, m.toggleVariantCmd(v.ID)
			}

			return m, nil
		case "d":
			if v, ok := m.selectedVariant(); ok {
				m.deleteVariantID = v.ID
				m.state = productsStateConfirmVariantDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.variantTable, cmd = m.variantTable.Update(msg)

	return m, cmd
}

func (m ProductsModel) openVariantForm(existing *menu.Variant) (tea.Model, tea.Cmd) {
	if existing != nil {
		m.vform.OpenEdit(*existing)
	} else if !m.vform.OpenNew(m.variantProduct.ID) {
		m.status = "Save the product before adding variants"
		return m, nil
	}

	name := m.vform.Name
	price := numberValue(m.vform.Price)

	m.variantForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Variant name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("price").
				Title("Price (Rp)").
				Value(&price).
				Validate(validatePositiveNumber),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = productsStateVariantForm

	return m, m.variantForm.Init()
}

func (m ProductsModel) updateVariantForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = productsStateVariants
			m.variantForm = nil
			m.vform.Close()

			return m, nil
		}
	}

	form, cmd := m.variantForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.variantForm = f
	}

	if m.variantForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.vform.Set("name", m.variantForm.GetString("name"))
	m.vform.Set("price", m.variantForm.GetString("price"))

	if errs := m.vform.Validate(); len(errs) > 0 {
		m.status = "Variant draft is invalid"
		m.state = productsStateVariants
		m.variantForm = nil
		m.vform.Close()

		return m, nil
	}

	id := m.vform.VariantID()
	params := m.vform.Params()

	return m, m.saveVariantCmd(id, params)
}

func (m ProductsModel) updateConfirmVariantDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			id := m.deleteVariantID
			m.deleteVariantID = 0

			return m, m.deleteVariantCmd(id)
		case "n", "esc":
			m.deleteVariantID = 0
			m.state = productsStateVariants

			return m, nil
		}
	}

	return m, nil
}

func (m ProductsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading menu items...")
	}

	if m.errMsg != "" {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %s", m.errMsg))
	}

	if m.state == productsStateVariants ||
		m.state == productsStateVariantForm ||
		m.state == productsStateConfirmVariantDelete {
		return m.variantsView()
	}

	stats := m.store.Stats()
	header := fmt.Sprintf(
		"%d items, %d active, %d with variants | [s] Status: %s | [p] Price: %s | [o] Sort: %s",
		stats.Total, stats.Active, stats.WithVariants,
		highlight(string(m.criteria.Status)),
		highlight(priceBucketLabel(m.criteria.Price)),
		highlight(string(m.criteria.SortBy)),
	)
	if m.criteria.Search != "" {
		header += fmt.Sprintf(" | Search: %s", highlight(m.criteria.Search))
	}

	if m.state == productsStateSearch {
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
	case productsStateForm:
		title := "Add Menu Item"
		if m.pform.Mode() == menu.ModeEdit {
			title = "Edit Menu Item"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(56).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	case productsStateConfirmDelete:
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).
			Render("Delete this menu item and its variants? [y/n]")
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ProductsModel) variantsView() string {
	header := fmt.Sprintf("Variants of %s (%s)",
		m.variantProduct.Name, m.variantProduct.PriceRange())

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.variantTable.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch m.state {
	case productsStateVariantForm:
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render("Variant\n\n" + m.variantForm.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	case productsStateConfirmVariantDelete:
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).
			Render("Delete this variant? [y/n]")
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ProductsModel) selected() (menu.Product, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return menu.Product{}, false
	}

	return m.visible[idx], true
}

func (m ProductsModel) selectedVariant() (menu.Variant, bool) {
	items := m.variants.Items()

	idx := m.variantTable.Cursor()
	if idx < 0 || idx >= len(items) {
		return menu.Variant{}, false
	}

	return items[idx], true
}

func (m *ProductsModel) refreshTable() {
	m.visible = m.criteria.Apply(m.store.Products(), m.store.CategoryName)

	rows := make([]table.Row, 0, len(m.visible))
	for _, p := range m.visible {
		rows = append(rows, table.Row{
			p.Name,
			m.store.CategoryName(p.CategoryID),
			p.PriceRange(),
			strconv.FormatInt(p.Stock, 10),
			activeLabel(p.Active),
			strconv.Itoa(len(p.Variants)),
		})
	}

	m.table.SetRows(rows)
}

func (m *ProductsModel) refreshVariantTable() {
	items := m.variants.Items()

	rows := make([]table.Row, 0, len(items))
	for _, v := range items {
		rows = append(rows, table.Row{
			v.Name,
			menu.FormatRupiah(v.Price),
			activeLabel(v.Active),
		})
	}

	m.variantTable.SetRows(rows)
}

func (m ProductsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return productsLoadedMsg{err: m.store.Load(ctx)}
	}
}

func (m ProductsModel) saveCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		saved, err := m.pform.Save(ctx, m.svc)

		return productSavedMsg{saved: saved, err: err}
	}
}

func (m ProductsModel) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return productMutatedMsg{err: m.store.Delete(ctx, id), action: "deleted"}
	}
}

func (m ProductsModel) toggleCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return productMutatedMsg{err: m.store.Toggle(ctx, id), action: "toggled"}
	}
}

func (m ProductsModel) fetchVariantsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return variantsFetchedMsg{err: m.variants.Fetch(ctx)}
	}
}

func (m ProductsModel) saveVariantCmd(id int64, params menu.VariantParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		if id != 0 {
			return variantMutatedMsg{err: m.variants.Update(ctx, id, params), action: "updated"}
		}

		return variantMutatedMsg{err: m.variants.Create(ctx, params), action: "created"}
	}
}

func (m ProductsModel) deleteVariantCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return variantMutatedMsg{err: m.variants.Delete(ctx, id), action: "deleted"}
	}
}

func (m ProductsModel) toggleVariantCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return variantMutatedMsg{err: m.variants.Toggle(ctx, id), action: "toggled"}
	}
}

func numberValue(n *int64) string {
	if n == nil {
		return ""
	}

	return strconv.FormatInt(*n, 10)
}

func validatePositiveNumber(s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a price above zero")
	}

	return nil
}

func nextPriceBucket(b filter.PriceBucket) filter.PriceBucket {
	switch b {
	case filter.PriceAny:
		return filter.PriceUnder25K
	case filter.PriceUnder25K:
		return filter.Price25To50K
	case filter.Price25To50K:
		return filter.Price50To100K
	case filter.Price50To100K:
		return filter.PriceOver100K
	default:
		return filter.PriceAny
	}
}

func priceBucketLabel(b filter.PriceBucket) string {
	switch b {
	case filter.PriceUnder25K:
		return "< 25k"
	case filter.Price25To50K:
		return "25k-50k"
	case filter.Price50To100K:
		return "50k-100k"
	case filter.PriceOver100K:
		return ">= 100k"
	default:
		return "any"
	}
}

func nextProductSort(s filter.ProductSort) filter.ProductSort {
	switch s {
	case filter.ProductsByName:
		return filter.ProductsByPrice
	case filter.ProductsByPrice:
		return filter.ProductsByStock
	case filter.ProductsByStock:
		return filter.ProductsByUpdated
	default:
		return filter.ProductsByName
	}
}
