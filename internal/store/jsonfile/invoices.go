package jsonfile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

// paymentRecord is the persisted shape of a payment, embedded in its invoice.
type paymentRecord struct {
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Method    string          `json:"method"`
}

// invoiceRecord is the persisted shape of an invoice.
type invoiceRecord struct {
	InvoiceID   string          `json:"invoice_id"`
	TripID      string          `json:"trip_id"`
	IssueDate   string          `json:"issue_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	Payments    []paymentRecord `json:"payments"`
}

func invoiceToRecord(inv *types.Invoice) invoiceRecord {
	rec := invoiceRecord{
		InvoiceID:   inv.ID,
		TripID:      inv.TripID,
		IssueDate:   inv.IssueDate.UTC().Format(time.RFC3339),
		TotalAmount: inv.TotalAmount,
		Status:      string(inv.Status),
		Payments:    make([]paymentRecord, 0, len(inv.Payments)),
	}
	for _, p := range inv.Payments {
		rec.Payments = append(rec.Payments, paymentRecord{
			PaymentID: p.ID,
			Amount:    p.Amount,
			Date:      p.Date.UTC().Format(time.RFC3339),
			Method:    p.Method,
		})
	}
	return rec
}

func (s *Store) loadInvoiceRecords() []invoiceRecord {
	log := logger.GetLogger()
	raw := readRawRecords(s.invoicesPath)
	records := make([]invoiceRecord, 0, len(raw))
	for _, msg := range raw {
		var rec invoiceRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			log.Warnw("Skipping malformed invoice record", "error", err)
			continue
		}
		if rec.InvoiceID == "" {
			log.Warnw("Skipping invoice record with missing identifier", "trip_id", rec.TripID)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// loadInvoices reconstructs invoices with their trip reference resolved.
// An invoice whose trip no longer exists is an orphan: it is logged and
// skipped, never an error.
func (s *Store) loadInvoices() []*types.Invoice {
	log := logger.GetLogger()
	records := s.loadInvoiceRecords()

	tripsByID := make(map[string]*types.Trip)
	for _, trip := range s.loadTrips() {
		tripsByID[trip.ID] = trip
	}

	invoices := make([]*types.Invoice, 0, len(records))
	for _, rec := range records {
		trip, ok := tripsByID[rec.TripID]
		if !ok {
			log.Warnw("Skipping orphaned invoice: its trip no longer exists",
				"invoice_id", rec.InvoiceID, "trip_id", rec.TripID)
			continue
		}

		issueDate, err := parseDate(rec.IssueDate)
		if err != nil {
			log.Warnw("Skipping invoice record with invalid issue date",
				"invoice_id", rec.InvoiceID, "issue_date", rec.IssueDate, "error", err)
			continue
		}

		status := types.InvoiceStatus(rec.Status)
		if !status.IsValid() {
			log.Warnw("Skipping invoice record with unknown status",
				"invoice_id", rec.InvoiceID, "status", rec.Status)
			continue
		}

		inv := &types.Invoice{
			ID:          rec.InvoiceID,
			TripID:      rec.TripID,
			Trip:        types.ResolvedRef(trip.ID, trip),
			IssueDate:   issueDate,
			TotalAmount: rec.TotalAmount,
			Status:      status,
			Payments:    make([]types.Payment, 0, len(rec.Payments)),
		}

		for _, payRec := range rec.Payments {
			payDate, err := parseDate(payRec.Date)
			if err != nil {
				log.Warnw("Skipping payment record with invalid date",
					"invoice_id", rec.InvoiceID, "payment_id", payRec.PaymentID, "error", err)
				continue
			}
			inv.Payments = append(inv.Payments, types.Payment{
				ID:        payRec.PaymentID,
				InvoiceID: rec.InvoiceID,
				Amount:    payRec.Amount,
				Date:      payDate,
				Method:    payRec.Method,
			})
		}

		invoices = append(invoices, inv)
	}
	return invoices
}

// SaveInvoice upserts the invoice by identifier and rewrites the collection.
func (s *Store) SaveInvoice(ctx context.Context, invoice *types.Invoice) error {
	records := s.loadInvoiceRecords()
	rec := invoiceToRecord(invoice)

	found := false
	for i := range records {
		if records[i].InvoiceID == rec.InvoiceID {
			records[i] = rec
			found = true
			break
		}
	}
	if !found {
		records = append(records, rec)
	}

	return writeRecords(s.invoicesPath, records)
}

func (s *Store) GetInvoice(ctx context.Context, id string) (*types.Invoice, error) {
	for _, invoice := range s.loadInvoices() {
		if invoice.ID == id {
			return invoice, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListInvoices(ctx context.Context) ([]*types.Invoice, error) {
	return s.loadInvoices(), nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	records := s.loadInvoiceRecords()
	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.InvoiceID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return store.ErrNotFound
	}
	return writeRecords(s.invoicesPath, kept)
}
