package utils

import (
	"time"

	"github.com/google/uuid"
)

// Record ID prefixes, matching the identifiers found in existing data files.
const (
	PrefixUser      = "U"
	PrefixTraveller = "T"
	PrefixTrip      = "TR"
	PrefixLeg       = "LG"
	PrefixInvoice   = "INV"
	PrefixPayment   = "PAY"
)

// NewRecordID creates a unique, human-readable record identifier of the form
// <prefix><timestamp>-<uuid fragment>. The uuid fragment keeps IDs minted
// within the same second from colliding.
func NewRecordID(prefix string) string {
	return prefix + time.Now().UTC().Format("20060102150405") + "-" + uuid.New().String()[:8]
}
