package view

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dapurlink/backoffice/internal/api"
	"github.com/dapurlink/backoffice/internal/menu"
	"github.com/dapurlink/backoffice/internal/payment"
)

// refreshEvery is the polling interval for the read-only report. New
// payments come from the POS terminals, never from this app.
const refreshEvery = 30 * time.Second

type transactionsState int

const (
	transactionsStateBrowse transactionsState = iota
	transactionsStateDetail
)

type TransactionsModel struct {
	CommonModel
	store *payment.Store

	state transactionsState
	table table.Model
	items []payment.Transaction

	loading bool
	errMsg  string
}

func NewTransactionsModel(store *payment.Store) TransactionsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Paid", Width: 17},
			{Title: "Session", Width: 8},
			{Title: "Order", Width: 7},
			{Title: "Table", Width: 6},
			{Title: "Customer", Width: 16},
			{Title: "Mode", Width: 13},
			{Title: "Amount", Width: 14},
			{Title: "Items", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styleTable(&t)

	return TransactionsModel{
		store:   store,
		table:   t,
		loading: true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	if m.state == transactionsStateDetail {
		return "Esc: back to list"
	}

	return "Esc: back | Enter: detail | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

type transactionsLoadedMsg struct{ err error }

type transactionsTickMsg struct{}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionsLoadedMsg:
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

	case transactionsTickMsg:
		// Silent background refresh; the cursor stays where it is.
		return m, tea.Batch(m.loadCmd(), m.tickCmd())

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case transactionsStateBrowse:
			switch msg.String() {
			case "esc":
				return m, Back
			case "r":
				m.loading = true
				return m, m.loadCmd()
			case "enter":
				if _, ok := m.selected(); ok {
					m.state = transactionsStateDetail
				}

				return m, nil
			}
		case transactionsStateDetail:
			if msg.String() == "esc" {
				m.state = transactionsStateBrowse
				return m, nil
			}

			return m, nil
		}
	}

	if m.state == transactionsStateBrowse {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.errMsg != "" {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %s", m.errMsg))
	}

	if m.state == transactionsStateDetail {
		return m.detailView()
	}

	var total int64
	for _, tx := range m.items {
		total += tx.Amount
	}

	header := fmt.Sprintf("%d payments, %s total | refreshes every %s",
		len(m.items), menu.FormatRupiah(total), refreshEvery)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m TransactionsModel) detailView() string {
	tx, ok := m.selected()
	if !ok {
		return lipgloss.NewStyle().Padding(2).Render("No transaction selected")
	}

	lines := fmt.Sprintf(
		"Payment #%d\n\nSession:  #%d (opened %s)\nOrder:    #%d\nTable:    %s\nCustomer: %s\nMode:     %s\nPaid:     %s\nAmount:   %s\n\nItems:",
		tx.PaymentID,
		tx.CashierSessionID, FormatTime(tx.SessionOpenedAt),
		tx.OrderID,
		tx.TableNumber,
		tx.CustomerName,
		tx.ModeLabel,
		FormatTime(tx.PaidAt),
		menu.FormatRupiah(tx.Amount),
	)

	if len(tx.Items) == 0 {
		lines += "\n  (no line items)"
	}

	for _, item := range tx.Items {
		name := item.MenuItemName
		if item.VariantName != "" {
			name += " / " + item.VariantName
		}

		lines += fmt.Sprintf("\n  %dx %-32s %s", item.Quantity, name, menu.FormatRupiah(item.LineTotal))
		if item.Notes != "" {
			lines += fmt.Sprintf("\n     note: %s", item.Notes)
		}
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(lines)

	return lipgloss.NewStyle().Padding(1).Render(panel)
}

func (m TransactionsModel) selected() (payment.Transaction, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return payment.Transaction{}, false
	}

	return m.items[idx], true
}

func (m *TransactionsModel) refreshTable() {
	m.items = m.store.Items()

	rows := make([]table.Row, 0, len(m.items))
	for _, tx := range m.items {
		rows = append(rows, table.Row{
			FormatTime(tx.PaidAt),
			fmt.Sprintf("#%d", tx.CashierSessionID),
			fmt.Sprintf("#%d", tx.OrderID),
			tx.TableNumber,
			tx.CustomerName,
			tx.ModeLabel,
			menu.FormatRupiah(tx.Amount),
			strconv.Itoa(len(tx.Items)),
		})
	}

	m.table.SetRows(rows)
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return transactionsLoadedMsg{err: m.store.Load(ctx)}
	}
}

func (m TransactionsModel) tickCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(time.Time) tea.Msg {
		return transactionsTickMsg{}
	})
}
