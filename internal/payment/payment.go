package payment

import (
	"encoding/json"
	"strconv"
	"time"
)

// Transaction is one flattened (cashier session, payment) pair from the
// grouped report. The session context is carried on every record so the
// table can be sorted and grouped without walking back up the tree.
type Transaction struct {
	CashierSessionID int64
	SessionOpenedAt  time.Time

	PaymentID    int64
	OrderID      int64
	TableNumber  string
	CustomerName string
	Amount       int64
	Mode         string
	ModeLabel    string
	PaidAt       time.Time

	Items []Item
}

// Item is one order line under a payment.
type Item struct {
	ID           int64
	MenuItemID   int64
	MenuItemName string
	VariantID    int64
	VariantName  string
	Quantity     int64
	UnitPrice    int64
	LineTotal    int64
	Notes        string
}

var modeLabels = map[string]string{
	"cash":     "Cash",
	"qris":     "QRIS",
	"debit":    "Debit Card",
	"credit":   "Credit Card",
	"transfer": "Bank Transfer",
	"ewallet":  "E-Wallet",
}

// ModeLabel maps a payment mode code to its display label. Unknown codes
// pass through unchanged rather than hiding the payment.
func ModeLabel(code string) string {
	if label, ok := modeLabels[code]; ok {
		return label
	}

	return code
}

// flexInt decodes amounts the API sends either as numbers or as quoted
// decimal strings.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}

	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}

		*f = flexInt(parsed)

		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*f = flexInt(n)

	return nil
}

type wireSession struct {
	ID       int64         `json:"id"`
	OpenedAt string        `json:"opened_at"`
	Payments []wirePayment `json:"payments"`
}

type wirePayment struct {
	ID           int64      `json:"id"`
	OrderID      int64      `json:"order_id"`
	TableNumber  string     `json:"table_number"`
	CustomerName string     `json:"customer_name"`
	Amount       flexInt    `json:"amount"`
	Mode         string     `json:"payment_mode"`
	PaidAt       string     `json:"paid_at"`
	Items        []wireItem `json:"order_items"`
}

type wireItem struct {
	ID          int64   `json:"id"`
	MenuItemID  int64   `json:"menu_item_id"`
	MenuItem    string  `json:"menu_item_name"`
	VariantID   int64   `json:"variant_id"`
	VariantName string  `json:"variant_name"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   flexInt `json:"unit_price"`
	Subtotal    flexInt `json:"subtotal"`
	Notes       string  `json:"notes"`
}

// Flatten walks the session → payments → order items tree and emits one
// Transaction per payment. A payment without items still comes out, with
// an empty Items slice; dropping it would understate the session total.
func Flatten(sessions []wireSession) []Transaction {
	var out []Transaction

	for _, s := range sessions {
		openedAt := parseTime(s.OpenedAt)

		for _, p := range s.Payments {
			tx := Transaction{
				CashierSessionID: s.ID,
				SessionOpenedAt:  openedAt,
				PaymentID:        p.ID,
				OrderID:          p.OrderID,
				TableNumber:      p.TableNumber,
				CustomerName:     p.CustomerName,
				Amount:           int64(p.Amount),
				Mode:             p.Mode,
				ModeLabel:        ModeLabel(p.Mode),
				PaidAt:           parseTime(p.PaidAt),
				Items:            make([]Item, 0, len(p.Items)),
			}

			for _, it := range p.Items {
				item := Item{
					ID:           it.ID,
					MenuItemID:   it.MenuItemID,
					MenuItemName: it.MenuItem,
					VariantID:    it.VariantID,
					VariantName:  it.VariantName,
					Quantity:     it.Quantity,
					UnitPrice:    int64(it.UnitPrice),
					LineTotal:    int64(it.Subtotal),
					Notes:        it.Notes,
				}

				if item.LineTotal == 0 {
					item.LineTotal = item.Quantity * item.UnitPrice
				}

				tx.Items = append(tx.Items, item)
			}

			out = append(out, tx)
		}
	}

	return out
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	return time.Time{}
}
