package types

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is mutated explicitly by callers, never derived from the
// computed balance.
type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "Pending"
	InvoicePaid      InvoiceStatus = "Paid"
	InvoiceCancelled InvoiceStatus = "Cancelled"
)

// IsValid checks if the status is a known invoice status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoicePending, InvoicePaid, InvoiceCancelled:
		return true
	default:
		return false
	}
}

func (s InvoiceStatus) String() string {
	return string(s)
}

// Payment records money received against an invoice. Payments are owned by
// their invoice and embedded in its persisted record.
type Payment struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoiceId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Method    string          `json:"method"`
}

func (p Payment) String() string {
	return fmt.Sprintf("Payment %s - £%s via %s on %s",
		p.ID, p.Amount.StringFixed(2), p.Method, p.Date.Format("2006-01-02"))
}

// Invoice bills a trip. TotalAmount is frozen at issuance: later leg edits do
// not retroactively change an already-issued invoice.
type Invoice struct {
	ID          string          `json:"id"`
	TripID      string          `json:"tripId"`
	Trip        Ref[Trip]       `json:"-"`
	IssueDate   time.Time       `json:"issueDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      InvoiceStatus   `json:"status"`
	Payments    []Payment       `json:"payments"`
}

// AddPayment appends a payment unconditionally. No clamping or sign
// validation happens here; callers may clamp before calling.
func (inv *Invoice) AddPayment(payment Payment) {
	inv.Payments = append(inv.Payments, payment)
}

// Balance is the total amount minus the sum of payment amounts. It may be
// negative on overpayment.
func (inv *Invoice) Balance() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range inv.Payments {
		paid = paid.Add(p.Amount)
	}
	return inv.TotalAmount.Sub(paid)
}

// IsFullyPaid reports whether the balance is zero or negative.
func (inv *Invoice) IsFullyPaid() bool {
	return inv.Balance().LessThanOrEqual(decimal.Zero)
}

func (inv *Invoice) String() string {
	statusIcon := "●"
	if inv.IsFullyPaid() {
		statusIcon = "✓"
	}
	return fmt.Sprintf("%s Invoice %s - £%s (%s) - Balance: £%s",
		statusIcon, inv.ID, inv.TotalAmount.StringFixed(2), inv.Status, inv.Balance().StringFixed(2))
}
