package main

import (
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/dapurlink/backoffice/cmd/tui/internal/view"
	"github.com/dapurlink/backoffice/internal/api"
	"github.com/dapurlink/backoffice/internal/auth"
	"github.com/dapurlink/backoffice/internal/category"
	"github.com/dapurlink/backoffice/internal/config"
	"github.com/dapurlink/backoffice/internal/menu"
	"github.com/dapurlink/backoffice/internal/payment"
)

type View int

const (
	ViewLogin View = iota
	ViewMenu
	ViewCategories
	ViewProducts
	ViewTransactions
)

type model struct {
	authManager *auth.Manager

	categoryStore *category.Store
	menuStore     *menu.Store
	variantStore  *menu.VariantStore
	paymentStore  *payment.Store
	menuService   *menu.Service

	previewDir string

	currentView View

	loginView        view.LoginModel
	categoriesView   view.CategoriesModel
	productsView     view.ProductsModel
	transactionsView view.TransactionsModel
}

// program is set before Run; stores use it to push a session-expired
// message from whatever goroutine hit the 401.
var program *tea.Program

func sessionExpired() {
	if program != nil {
		program.Send(view.SessionExpiredMsg{})
	}
}

func initialModel() model {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sessionFile, err := cfg.SessionFile()
	if err != nil {
		slog.Error("failed to resolve session path", "error", err)
		os.Exit(1)
	}

	client := api.New(cfg.API.URL, api.WithTimeout(cfg.API.Timeout))
	manager := auth.NewManager(client, sessionFile)

	previewDir := filepath.Join(os.TempDir(), "backoffice-previews")

	categorySvc := category.NewService(client)
	menuSvc := menu.NewService(client)
	variantSvc := menu.NewVariantService(client)
	paymentSvc := payment.NewService(client)

	m := model{
		authManager:   manager,
		categoryStore: category.NewStore(categorySvc, sessionExpired),
		menuStore:     menu.NewStore(menuSvc, categorySvc, sessionExpired),
		variantStore:  menu.NewVariantStore(variantSvc, sessionExpired),
		paymentStore:  payment.NewStore(paymentSvc, sessionExpired),
		menuService:   menuSvc,
		previewDir:    previewDir,
		currentView:   ViewLogin,
		loginView:     view.NewLoginModel(manager),
	}

	if _, ok := manager.Restore(); ok {
		m.currentView = ViewMenu
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.LoggedInMsg:
		m.currentView = ViewMenu
		return m, nil

	case view.SessionExpiredMsg:
		m.authManager.Logout()
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.authManager)

		return m, m.loginView.Init()

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCategories
				m.categoriesView = view.NewCategoriesModel(m.categoryStore, m.previewDir)

				return m, m.categoriesView.Init()
			case "2":
				m.currentView = ViewProducts
				m.productsView = view.NewProductsModel(m.menuStore, m.menuService, m.variantStore, m.previewDir)

				return m, m.productsView.Init()
			case "3":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.paymentStore)

				return m, m.transactionsView.Init()
			case "l":
				return m, func() tea.Msg { return view.SessionExpiredMsg{} }
			}
		}
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewProducts:
		var newModel tea.Model
		newModel, cmd = m.productsView.Update(msg)
		m.productsView = newModel.(view.ProductsModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		title := "Back Office"
		if session := m.authManager.Current(); session != nil {
			title = session.Tenant.Name + " Back Office"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			title + "\n\n" +
				"1. Menu Categories\n" +
				"2. Menu Items\n" +
				"3. Transactions\n\n" +
				"l. Logout\n" +
				"q. Quit",
		)
	case ViewCategories:
		return m.categoriesView.View()
	case ViewProducts:
		return m.productsView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	}

	return "Unknown View"
}

func main() {
	program = tea.NewProgram(initialModel())
	if _, err := program.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
