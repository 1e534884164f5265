package models

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/errors"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/utils"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

// InvoiceModel manages invoices and payments. An invoice's total is frozen at
// issuance; later leg edits never change an already-issued invoice. Status is
// set explicitly, never derived from the balance.
type InvoiceModel struct {
	store     store.InvoiceStore
	tripStore store.TripStore
}

func NewInvoiceModel(store store.InvoiceStore, tripStore store.TripStore) *InvoiceModel {
	return &InvoiceModel{
		store:     store,
		tripStore: tripStore,
	}
}

// CreateInvoice issues an invoice for the trip. The total amount is the
// trip's leg-cost sum at this moment.
func (im *InvoiceModel) CreateInvoice(ctx context.Context, tripID string) (*types.Invoice, error) {
	log := logger.GetLogger()

	trip, err := im.tripStore.GetTrip(ctx, tripID)
	if err != nil {
		return nil, errors.NotFound("Trip", tripID)
	}

	invoice := &types.Invoice{
		ID:          utils.NewRecordID(utils.PrefixInvoice),
		TripID:      trip.ID,
		Trip:        types.ResolvedRef(trip.ID, trip),
		IssueDate:   time.Now().UTC(),
		TotalAmount: trip.TotalLegCost(),
		Status:      types.InvoicePending,
		Payments:    []types.Payment{},
	}

	if err := im.store.SaveInvoice(ctx, invoice); err != nil {
		return nil, errors.NewStorageError(err)
	}

	log.Infow("Invoice created", "invoice_id", invoice.ID, "trip_id", trip.ID,
		"total_amount", invoice.TotalAmount.StringFixed(2))
	return invoice, nil
}

func (im *InvoiceModel) GetInvoice(ctx context.Context, id string) (*types.Invoice, error) {
	invoice, err := im.store.GetInvoice(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Invoice", id)
	}
	return invoice, nil
}

func (im *InvoiceModel) ListInvoices(ctx context.Context) ([]*types.Invoice, error) {
	invoices, err := im.store.ListInvoices(ctx)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	return invoices, nil
}

// ListInvoicesForTrip returns the invoices issued against the given trip.
func (im *InvoiceModel) ListInvoicesForTrip(ctx context.Context, tripID string) ([]*types.Invoice, error) {
	invoices, err := im.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*types.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if invoice.TripID == tripID {
			matched = append(matched, invoice)
		}
	}
	return matched, nil
}

// AddPayment records a payment against the invoice. The amount is appended
// unconditionally: no clamping, no sign validation. Callers that want to cap
// a payment at the remaining balance must do so before calling.
func (im *InvoiceModel) AddPayment(ctx context.Context, invoiceID string, amount decimal.Decimal, date time.Time, method string) (*types.Payment, error) {
	invoice, err := im.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	payment := types.Payment{
		ID:        utils.NewRecordID(utils.PrefixPayment),
		InvoiceID: invoice.ID,
		Amount:    amount,
		Date:      date,
		Method:    method,
	}
	invoice.AddPayment(payment)

	if err := im.store.SaveInvoice(ctx, invoice); err != nil {
		return nil, errors.NewStorageError(err)
	}
	return &payment, nil
}

// Balance returns the invoice's remaining balance. Negative means overpaid;
// an overpaid invoice still counts as fully paid.
func (im *InvoiceModel) Balance(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	invoice, err := im.GetInvoice(ctx, invoiceID)
	if err != nil {
		return decimal.Zero, err
	}
	return invoice.Balance(), nil
}

// SetStatus explicitly moves the invoice to the given status.
func (im *InvoiceModel) SetStatus(ctx context.Context, invoiceID string, status types.InvoiceStatus) error {
	if !status.IsValid() {
		return errors.ValidationFailed("Invalid invoice status", string(status))
	}

	invoice, err := im.GetInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}

	invoice.Status = status
	if err := im.store.SaveInvoice(ctx, invoice); err != nil {
		return errors.NewStorageError(err)
	}
	return nil
}

// DeleteInvoice removes the invoice record.
func (im *InvoiceModel) DeleteInvoice(ctx context.Context, id string) error {
	if err := im.store.DeleteInvoice(ctx, id); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Invoice", id)
		}
		return errors.NewStorageError(err)
	}
	return nil
}
