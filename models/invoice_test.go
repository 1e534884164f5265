package models

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/errors"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

func TestCreateInvoiceFreezesTotalAtIssuance(t *testing.T) {
	invoiceStore := new(MockInvoiceStore)
	tripStore := new(MockTripStore)
	model := NewInvoiceModel(invoiceStore, tripStore)
	ctx := context.Background()

	trip := newStoredTrip()
	trip.Legs = []types.TripLeg{
		{Sequence: 1, Cost: decimal.NewFromInt(100)},
		{Sequence: 2, Cost: decimal.NewFromInt(150)},
	}
	tripStore.On("GetTrip", ctx, testTripID).Return(trip, nil)
	invoiceStore.On("SaveInvoice", ctx, mock.AnythingOfType("*types.Invoice")).Return(nil)

	invoice, err := model.CreateInvoice(ctx, testTripID)

	require.NoError(t, err)
	assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, types.InvoicePending, invoice.Status)

	// Later leg edits must not affect the issued invoice.
	trip.Legs = append(trip.Legs, types.TripLeg{Sequence: 3, Cost: decimal.NewFromInt(999)})
	assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(250)))
}

func TestCreateInvoiceUnknownTrip(t *testing.T) {
	invoiceStore := new(MockInvoiceStore)
	tripStore := new(MockTripStore)
	model := NewInvoiceModel(invoiceStore, tripStore)
	ctx := context.Background()

	tripStore.On("GetTrip", ctx, "trip-missing").Return(nil, store.ErrNotFound)

	_, err := model.CreateInvoice(ctx, "trip-missing")

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.NotFoundError))
	invoiceStore.AssertNotCalled(t, "SaveInvoice", mock.Anything, mock.Anything)
}

func TestAddPaymentAppendsUnconditionally(t *testing.T) {
	invoiceStore := new(MockInvoiceStore)
	tripStore := new(MockTripStore)
	model := NewInvoiceModel(invoiceStore, tripStore)
	ctx := context.Background()

	invoice := &types.Invoice{
		ID:          "inv-1",
		TripID:      testTripID,
		TotalAmount: decimal.NewFromInt(100),
		Status:      types.InvoicePending,
	}
	invoiceStore.On("GetInvoice", ctx, "inv-1").Return(invoice, nil)
	invoiceStore.On("SaveInvoice", ctx, invoice).Return(nil)

	// Overpayment is accepted without clamping.
	payment, err := model.AddPayment(ctx, "inv-1", decimal.NewFromInt(150), time.Now(), "Card")

	require.NoError(t, err)
	assert.NotEmpty(t, payment.ID)
	require.Len(t, invoice.Payments, 1)
	assert.True(t, invoice.Balance().Equal(decimal.NewFromInt(-50)))
	assert.True(t, invoice.IsFullyPaid())
	// Status stays Pending until a caller sets it explicitly.
	assert.Equal(t, types.InvoicePending, invoice.Status)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	model := NewInvoiceModel(new(MockInvoiceStore), new(MockTripStore))

	err := model.SetStatus(context.Background(), "inv-1", types.InvoiceStatus("Refunded"))

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ValidationError))
}

func TestSetStatusPersistsChange(t *testing.T) {
	invoiceStore := new(MockInvoiceStore)
	model := NewInvoiceModel(invoiceStore, new(MockTripStore))
	ctx := context.Background()

	invoice := &types.Invoice{ID: "inv-1", Status: types.InvoicePending}
	invoiceStore.On("GetInvoice", ctx, "inv-1").Return(invoice, nil)
	invoiceStore.On("SaveInvoice", ctx, invoice).Return(nil)

	err := model.SetStatus(ctx, "inv-1", types.InvoicePaid)

	require.NoError(t, err)
	assert.Equal(t, types.InvoicePaid, invoice.Status)
}

func TestListInvoicesForTrip(t *testing.T) {
	invoiceStore := new(MockInvoiceStore)
	model := NewInvoiceModel(invoiceStore, new(MockTripStore))
	ctx := context.Background()

	invoiceStore.On("ListInvoices", ctx).Return([]*types.Invoice{
		{ID: "inv-1", TripID: testTripID},
		{ID: "inv-2", TripID: "trip-other"},
		{ID: "inv-3", TripID: testTripID},
	}, nil)

	matched, err := model.ListInvoicesForTrip(ctx, testTripID)

	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "inv-1", matched[0].ID)
	assert.Equal(t, "inv-3", matched[1].ID)
}
