package types

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransportMode enumerates how a leg is travelled. Persisted values match
// existing data files.
type TransportMode string

const (
	TransportFlight TransportMode = "Flight"
	TransportTrain  TransportMode = "Train"
	TransportBus    TransportMode = "Bus"
	TransportTaxi   TransportMode = "Taxi"
	TransportShip   TransportMode = "Ship"
)

// TransportModes lists all modes in menu order.
func TransportModes() []TransportMode {
	return []TransportMode{TransportFlight, TransportTrain, TransportBus, TransportTaxi, TransportShip}
}

// IsValid checks if the mode is a known transport mode.
func (m TransportMode) IsValid() bool {
	switch m {
	case TransportFlight, TransportTrain, TransportBus, TransportTaxi, TransportShip:
		return true
	default:
		return false
	}
}

func (m TransportMode) String() string {
	return string(m)
}

// LegType enumerates what a leg represents within the itinerary.
type LegType string

const (
	LegAccommodation   LegType = "Accommodation"
	LegPointOfInterest LegType = "Point of Interest"
	LegTransfer        LegType = "Transfer Point"
)

// LegTypes lists all leg types in menu order.
func LegTypes() []LegType {
	return []LegType{LegAccommodation, LegPointOfInterest, LegTransfer}
}

// IsValid checks if the value is a known leg type.
func (lt LegType) IsValid() bool {
	switch lt {
	case LegAccommodation, LegPointOfInterest, LegTransfer:
		return true
	default:
		return false
	}
}

func (lt LegType) String() string {
	return string(lt)
}

// TripLeg is one segment of a trip's itinerary. Legs are owned by their trip
// and embedded in the trip's persisted record. Cost is signed: negative
// values represent refunds or credits.
type TripLeg struct {
	ID            string          `json:"id"`
	Sequence      int             `json:"sequence"`
	StartLocation string          `json:"startLocation"`
	Destination   string          `json:"destination"`
	Provider      string          `json:"provider"`
	Mode          TransportMode   `json:"mode"`
	Type          LegType         `json:"type"`
	Cost          decimal.Decimal `json:"cost"`
	Description   string          `json:"description"`
}

func (l TripLeg) String() string {
	return fmt.Sprintf("%d. %s → %s (%s)", l.Sequence, l.StartLocation, l.Destination, l.Mode)
}

// Trip is a named journey with an ordered list of legs and a set of assigned
// travellers. Coordinator is nullable: trips created by non-coordinators
// start unassigned.
type Trip struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	StartDate    time.Time   `json:"startDate"`
	DurationDays int         `json:"durationDays"`
	Coordinator  Ref[User]   `json:"coordinator"`
	TravellerIDs []string    `json:"travellerIds"`
	Travellers   []Traveller `json:"-"`
	Legs         []TripLeg   `json:"legs"`
	IsActive     bool        `json:"isActive"`
}

// HasTraveller reports whether the traveller ID is currently assigned.
func (t *Trip) HasTraveller(travellerID string) bool {
	for _, id := range t.TravellerIDs {
		if id == travellerID {
			return true
		}
	}
	return false
}

// TotalLegCost is the signed sum of all leg costs. Refund legs subtract.
func (t *Trip) TotalLegCost() decimal.Decimal {
	total := decimal.Zero
	for _, leg := range t.Legs {
		total = total.Add(leg.Cost)
	}
	return total
}

// Itinerary returns the trip's legs sorted by sequence. The sort is stable:
// legs sharing a sequence number keep their insertion order, so the result
// is deterministic even after manual sequence edits.
func (t *Trip) Itinerary() []TripLeg {
	legs := make([]TripLeg, len(t.Legs))
	copy(legs, t.Legs)
	sort.SliceStable(legs, func(i, j int) bool {
		return legs[i].Sequence < legs[j].Sequence
	})
	return legs
}

// RenderItinerary formats the ordered itinerary for display.
func (t *Trip) RenderItinerary() string {
	legs := t.Itinerary()
	if len(legs) == 0 {
		return "No itinerary available for this trip."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ITINERARY FOR: %s\n", t.Name)
	fmt.Fprintf(&b, "Start Date: %s\n", t.StartDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Duration: %d days\n", t.DurationDays)
	b.WriteString(strings.Repeat("=", 50) + "\n")

	for _, leg := range legs {
		fmt.Fprintf(&b, "%s\n", leg)
		fmt.Fprintf(&b, "   Provider: %s\n", leg.Provider)
		fmt.Fprintf(&b, "   Type: %s\n", leg.Type)
		if leg.Cost.GreaterThan(decimal.Zero) {
			fmt.Fprintf(&b, "   Cost: £%s\n", leg.Cost.StringFixed(2))
		}
		if leg.Description != "" {
			fmt.Fprintf(&b, "   Notes: %s\n", leg.Description)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "TOTAL ESTIMATED COST: £%s\n", t.TotalLegCost().StringFixed(2))
	return b.String()
}
