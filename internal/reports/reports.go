// Package reports builds read-only aggregations over collection snapshots
// for the reporting surface. Chart rendering is an external concern; this
// package produces the aggregate numbers and a plain-text rendering.
package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/errors"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

// Generator builds reports and writes their text renderings under the
// configured output directory.
type Generator struct {
	outputDir string
}

func NewGenerator(outputDir string) *Generator {
	return &Generator{outputDir: outputDir}
}

// TripStatistics aggregates trips per coordinator and the active/inactive split.
type TripStatistics struct {
	TripsPerCoordinator map[string]int
	ActiveTrips         int
	InactiveTrips       int
}

// FinancialSummary aggregates invoice revenue, received payments and the
// method split.
type FinancialSummary struct {
	TotalRevenue        decimal.Decimal
	TotalPaid           decimal.Decimal
	TotalOutstanding    decimal.Decimal
	FullyPaidCount      int
	PendingCount        int
	PaymentMethodTotals map[string]decimal.Decimal
	TopInvoices         []*types.Invoice // by total amount, descending, at most five
}

// AgeBand is one bucket of the traveller age distribution.
type AgeBand struct {
	Label string
	Count int
}

// TravellerStatistics aggregates the traveller age distribution.
type TravellerStatistics struct {
	AgeBands        []AgeBand
	TotalTravellers int
}

// MonthlyFigure is one month of the revenue/trip trend.
type MonthlyFigure struct {
	Month     string // YYYY-MM
	Revenue   decimal.Decimal
	TripCount int
}

// RevenueTrends aggregates invoices and trips per calendar month.
type RevenueTrends struct {
	Months []MonthlyFigure
}

// BuildTripStatistics groups trips by coordinator and counts the
// active/inactive split.
func (g *Generator) BuildTripStatistics(trips []*types.Trip) (*TripStatistics, error) {
	if len(trips) == 0 {
		return nil, errors.ValidationFailed("No trip data available for statistics", "")
	}

	stats := &TripStatistics{
		TripsPerCoordinator: make(map[string]int),
	}
	for _, trip := range trips {
		if trip.Coordinator.Resolved() {
			stats.TripsPerCoordinator[trip.Coordinator.Value.DisplayName()]++
		}
		if trip.IsActive {
			stats.ActiveTrips++
		} else {
			stats.InactiveTrips++
		}
	}

	if len(stats.TripsPerCoordinator) == 0 {
		return nil, errors.ValidationFailed("No coordinator data available", "")
	}
	return stats, nil
}

// BuildFinancialSummary aggregates the invoice collection.
func (g *Generator) BuildFinancialSummary(invoices []*types.Invoice) (*FinancialSummary, error) {
	if len(invoices) == 0 {
		return nil, errors.ValidationFailed("No invoice data available", "")
	}

	summary := &FinancialSummary{
		TotalRevenue:        decimal.Zero,
		TotalPaid:           decimal.Zero,
		PaymentMethodTotals: make(map[string]decimal.Decimal),
	}

	for _, invoice := range invoices {
		summary.TotalRevenue = summary.TotalRevenue.Add(invoice.TotalAmount)
		for _, payment := range invoice.Payments {
			summary.TotalPaid = summary.TotalPaid.Add(payment.Amount)
			current := summary.PaymentMethodTotals[payment.Method]
			summary.PaymentMethodTotals[payment.Method] = current.Add(payment.Amount)
		}
		if invoice.IsFullyPaid() {
			summary.FullyPaidCount++
		} else {
			summary.PendingCount++
		}
	}
	summary.TotalOutstanding = summary.TotalRevenue.Sub(summary.TotalPaid)

	top := make([]*types.Invoice, len(invoices))
	copy(top, invoices)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalAmount.GreaterThan(top[j].TotalAmount)
	})
	if len(top) > 5 {
		top = top[:5]
	}
	summary.TopInvoices = top

	return summary, nil
}

// BuildTravellerStatistics buckets travellers into age bands.
func (g *Generator) BuildTravellerStatistics(travellers []*types.Traveller, now time.Time) (*TravellerStatistics, error) {
	if len(travellers) == 0 {
		return nil, errors.ValidationFailed("No traveller data available", "")
	}

	bands := []AgeBand{
		{Label: "0-18"},
		{Label: "19-30"},
		{Label: "31-50"},
		{Label: "51-70"},
		{Label: "70+"},
	}
	for _, traveller := range travellers {
		age := traveller.Age(now)
		switch {
		case age <= 18:
			bands[0].Count++
		case age <= 30:
			bands[1].Count++
		case age <= 50:
			bands[2].Count++
		case age <= 70:
			bands[3].Count++
		default:
			bands[4].Count++
		}
	}

	return &TravellerStatistics{
		AgeBands:        bands,
		TotalTravellers: len(travellers),
	}, nil
}

// BuildRevenueTrends groups invoice revenue and trip starts by calendar
// month. At least two months of invoice data are required for a trend.
func (g *Generator) BuildRevenueTrends(invoices []*types.Invoice, trips []*types.Trip) (*RevenueTrends, error) {
	if len(invoices) == 0 {
		return nil, errors.ValidationFailed("No invoice data available for trends", "")
	}

	monthlyRevenue := make(map[string]decimal.Decimal)
	monthlyTrips := make(map[string]int)

	for _, invoice := range invoices {
		key := invoice.IssueDate.Format("2006-01")
		monthlyRevenue[key] = monthlyRevenue[key].Add(invoice.TotalAmount)
	}
	for _, trip := range trips {
		key := trip.StartDate.Format("2006-01")
		monthlyTrips[key]++
	}

	months := make([]string, 0, len(monthlyRevenue))
	for month := range monthlyRevenue {
		months = append(months, month)
	}
	sort.Strings(months)

	if len(months) < 2 {
		return nil, errors.ValidationFailed(
			"Insufficient data for trend analysis",
			"need at least 2 months of invoices",
		)
	}

	trends := &RevenueTrends{Months: make([]MonthlyFigure, 0, len(months))}
	for _, month := range months {
		trends.Months = append(trends.Months, MonthlyFigure{
			Month:     month,
			Revenue:   monthlyRevenue[month],
			TripCount: monthlyTrips[month],
		})
	}
	return trends, nil
}

// WriteReport saves a text rendering under the output directory as a
// timestamped file and returns the file path.
func (g *Generator) WriteReport(name, content string) (string, error) {
	log := logger.GetLogger()

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", errors.NewStorageError(err)
	}

	filename := fmt.Sprintf("%s_%s.txt", name, time.Now().Format("20060102_150405"))
	path := filepath.Join(g.outputDir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.NewStorageError(err)
	}

	log.Infow("Report written", "report", name, "path", path)
	return path, nil
}

// RenderTripStatistics formats the aggregate for display.
func RenderTripStatistics(stats *TripStatistics) string {
	var b strings.Builder
	b.WriteString("TRIP STATISTICS\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	b.WriteString("Trips per coordinator:\n")

	names := make([]string, 0, len(stats.TripsPerCoordinator))
	for name := range stats.TripsPerCoordinator {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %d\n", name, stats.TripsPerCoordinator[name])
	}

	fmt.Fprintf(&b, "Active trips: %d\n", stats.ActiveTrips)
	fmt.Fprintf(&b, "Inactive trips: %d\n", stats.InactiveTrips)
	return b.String()
}

// RenderFinancialSummary formats the aggregate for display.
func RenderFinancialSummary(summary *FinancialSummary) string {
	var b strings.Builder
	b.WriteString("FINANCIAL SUMMARY\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "Total revenue: £%s\n", summary.TotalRevenue.StringFixed(2))
	fmt.Fprintf(&b, "Total paid: £%s\n", summary.TotalPaid.StringFixed(2))
	fmt.Fprintf(&b, "Outstanding: £%s\n", summary.TotalOutstanding.StringFixed(2))
	fmt.Fprintf(&b, "Fully paid invoices: %d\n", summary.FullyPaidCount)
	fmt.Fprintf(&b, "Pending invoices: %d\n", summary.PendingCount)

	if len(summary.PaymentMethodTotals) > 0 {
		b.WriteString("Payment methods:\n")
		methods := make([]string, 0, len(summary.PaymentMethodTotals))
		for method := range summary.PaymentMethodTotals {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		for _, method := range methods {
			fmt.Fprintf(&b, "  %s: £%s\n", method, summary.PaymentMethodTotals[method].StringFixed(2))
		}
	}

	if len(summary.TopInvoices) > 0 {
		b.WriteString("Top invoices by value:\n")
		for _, invoice := range summary.TopInvoices {
			name := invoice.TripID
			if invoice.Trip.Resolved() {
				name = invoice.Trip.Value.Name
			}
			fmt.Fprintf(&b, "  %s: £%s\n", name, invoice.TotalAmount.StringFixed(2))
		}
	}
	return b.String()
}

// RenderTravellerStatistics formats the aggregate for display.
func RenderTravellerStatistics(stats *TravellerStatistics) string {
	var b strings.Builder
	b.WriteString("TRAVELLER STATISTICS\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	b.WriteString("Age distribution:\n")
	for _, band := range stats.AgeBands {
		fmt.Fprintf(&b, "  %s: %d\n", band.Label, band.Count)
	}
	fmt.Fprintf(&b, "Total travellers: %d\n", stats.TotalTravellers)
	return b.String()
}

// RenderRevenueTrends formats the aggregate for display.
func RenderRevenueTrends(trends *RevenueTrends) string {
	var b strings.Builder
	b.WriteString("REVENUE TRENDS\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	for _, figure := range trends.Months {
		fmt.Fprintf(&b, "%s: revenue £%s, trips %d\n",
			figure.Month, figure.Revenue.StringFixed(2), figure.TripCount)
	}
	return b.String()
}
