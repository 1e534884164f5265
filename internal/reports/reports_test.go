package reports

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

func init() {
	logger.IsTest = true
}

func coordinatorRef(id, name string) types.Ref[types.User] {
	return types.ResolvedRef(id, &types.User{ID: id, Name: name, Role: types.RoleCoordinator})
}

func TestBuildTripStatistics(t *testing.T) {
	g := NewGenerator(t.TempDir())

	trips := []*types.Trip{
		{ID: "tr-1", Coordinator: coordinatorRef("u-1", "Cora Day"), IsActive: true},
		{ID: "tr-2", Coordinator: coordinatorRef("u-1", "Cora Day"), IsActive: false},
		{ID: "tr-3", Coordinator: coordinatorRef("u-2", "Dan West"), IsActive: true},
		{ID: "tr-4", IsActive: true}, // unassigned
	}

	stats, err := g.BuildTripStatistics(trips)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TripsPerCoordinator["Cora Day"])
	assert.Equal(t, 1, stats.TripsPerCoordinator["Dan West"])
	assert.Equal(t, 3, stats.ActiveTrips)
	assert.Equal(t, 1, stats.InactiveTrips)
}

func TestBuildTripStatisticsRequiresData(t *testing.T) {
	g := NewGenerator(t.TempDir())

	_, err := g.BuildTripStatistics(nil)
	assert.Error(t, err)

	// Trips without any resolved coordinator also fail.
	_, err = g.BuildTripStatistics([]*types.Trip{{ID: "tr-1", IsActive: true}})
	assert.Error(t, err)
}

func TestBuildFinancialSummary(t *testing.T) {
	g := NewGenerator(t.TempDir())

	invoices := []*types.Invoice{
		{
			ID: "inv-1", TotalAmount: decimal.NewFromInt(300), Status: types.InvoicePending,
			Payments: []types.Payment{
				{Amount: decimal.NewFromInt(100), Method: "Card"},
				{Amount: decimal.NewFromInt(50), Method: "Cash"},
			},
		},
		{
			ID: "inv-2", TotalAmount: decimal.NewFromInt(200), Status: types.InvoicePaid,
			Payments: []types.Payment{
				{Amount: decimal.NewFromInt(200), Method: "Card"},
			},
		},
	}

	summary, err := g.BuildFinancialSummary(invoices)

	require.NoError(t, err)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.TotalPaid.Equal(decimal.NewFromInt(350)))
	assert.True(t, summary.TotalOutstanding.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 1, summary.FullyPaidCount)
	assert.Equal(t, 1, summary.PendingCount)
	assert.True(t, summary.PaymentMethodTotals["Card"].Equal(decimal.NewFromInt(300)))
	assert.True(t, summary.PaymentMethodTotals["Cash"].Equal(decimal.NewFromInt(50)))
	require.Len(t, summary.TopInvoices, 2)
	assert.Equal(t, "inv-1", summary.TopInvoices[0].ID)
}

func TestBuildFinancialSummaryTopInvoicesCappedAtFive(t *testing.T) {
	g := NewGenerator(t.TempDir())

	var invoices []*types.Invoice
	for i := 0; i < 7; i++ {
		invoices = append(invoices, &types.Invoice{
			ID:          string(rune('a' + i)),
			TotalAmount: decimal.NewFromInt(int64(100 + i)),
		})
	}

	summary, err := g.BuildFinancialSummary(invoices)

	require.NoError(t, err)
	require.Len(t, summary.TopInvoices, 5)
	assert.True(t, summary.TopInvoices[0].TotalAmount.Equal(decimal.NewFromInt(106)))
}

func TestBuildTravellerStatisticsAgeBands(t *testing.T) {
	g := NewGenerator(t.TempDir())
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	dob := func(age int) time.Time {
		return time.Date(2026-age, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	travellers := []*types.Traveller{
		{ID: "t-1", DateOfBirth: dob(10)},
		{ID: "t-2", DateOfBirth: dob(25)},
		{ID: "t-3", DateOfBirth: dob(40)},
		{ID: "t-4", DateOfBirth: dob(65)},
		{ID: "t-5", DateOfBirth: dob(80)},
		{ID: "t-6", DateOfBirth: dob(30)},
	}

	stats, err := g.BuildTravellerStatistics(travellers, now)

	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalTravellers)
	assert.Equal(t, 1, stats.AgeBands[0].Count) // 0-18
	assert.Equal(t, 2, stats.AgeBands[1].Count) // 19-30
	assert.Equal(t, 1, stats.AgeBands[2].Count) // 31-50
	assert.Equal(t, 1, stats.AgeBands[3].Count) // 51-70
	assert.Equal(t, 1, stats.AgeBands[4].Count) // 70+
}

func TestBuildRevenueTrendsRequiresTwoMonths(t *testing.T) {
	g := NewGenerator(t.TempDir())

	invoices := []*types.Invoice{
		{ID: "inv-1", IssueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(100)},
	}

	_, err := g.BuildRevenueTrends(invoices, nil)

	assert.Error(t, err)
}

func TestBuildRevenueTrends(t *testing.T) {
	g := NewGenerator(t.TempDir())

	invoices := []*types.Invoice{
		{ID: "inv-1", IssueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(100)},
		{ID: "inv-2", IssueDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(50)},
		{ID: "inv-3", IssueDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(75)},
	}
	trips := []*types.Trip{
		{ID: "tr-1", StartDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)},
		{ID: "tr-2", StartDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)},
	}

	trends, err := g.BuildRevenueTrends(invoices, trips)

	require.NoError(t, err)
	require.Len(t, trends.Months, 2)
	assert.Equal(t, "2026-03", trends.Months[0].Month)
	assert.True(t, trends.Months[0].Revenue.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 1, trends.Months[0].TripCount)
	assert.Equal(t, "2026-05", trends.Months[1].Month)
}

func TestWriteReportCreatesTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)

	path, err := g.WriteReport("trip_statistics", "TRIP STATISTICS\ncontent\n")

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "TRIP STATISTICS")
	assert.Contains(t, path, "trip_statistics_")
}

func TestRenderFinancialSummaryOutput(t *testing.T) {
	summary := &FinancialSummary{
		TotalRevenue:        decimal.NewFromInt(500),
		TotalPaid:           decimal.NewFromInt(350),
		TotalOutstanding:    decimal.NewFromInt(150),
		FullyPaidCount:      1,
		PendingCount:        1,
		PaymentMethodTotals: map[string]decimal.Decimal{"Card": decimal.NewFromInt(300)},
	}

	rendered := RenderFinancialSummary(summary)

	assert.Contains(t, rendered, "Total revenue: £500.00")
	assert.Contains(t, rendered, "Outstanding: £150.00")
	assert.Contains(t, rendered, "Card: £300.00")
}
