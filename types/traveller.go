package types

import "time"

// Traveller is a person who can be assigned to trips. Travellers exist
// independently of any trip.
type Traveller struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	DateOfBirth      time.Time `json:"dateOfBirth"` // date-only
	EmergencyContact string    `json:"emergencyContact"`
	GovernmentID     string    `json:"governmentId"`
}

// Age returns the traveller's age in whole years at the given time.
func (t *Traveller) Age(at time.Time) int {
	age := at.Year() - t.DateOfBirth.Year()
	if at.YearDay() < t.DateOfBirth.YearDay() {
		age--
	}
	return age
}
