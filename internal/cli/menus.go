package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/reports"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

func (s *Shell) adminMenu(ctx context.Context) {
	for {
		s.displayHeader()
		s.println("=== ADMINISTRATOR MENU ===")
		s.println("1. Manage Trip Managers")
		s.println("2. View All Invoices")
		s.println("3. Generate Reports")
		s.println("4. Coordinator Functions")
		s.println("5. Logout")
		s.println("6. Exit System")

		choice, ok := s.prompt("\nEnter your choice (1-6): ")
		if !ok {
			s.running = false
			return
		}
		switch choice {
		case "1":
			s.manageUsers(ctx, types.RoleManager)
		case "2":
			s.viewAllInvoices(ctx)
		case "3":
			s.reportsMenu(ctx)
		case "4":
			if done := s.coordinatorFunctions(ctx); done {
				return
			}
		case "5":
			s.logout()
			return
		case "6":
			s.running = false
			return
		default:
			s.println("Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) managerMenu(ctx context.Context) {
	for {
		s.displayHeader()
		s.println("=== TRIP MANAGER MENU ===")
		s.println("1. Manage Trip Coordinators")
		s.println("2. Generate Total Invoice")
		s.println("3. Coordinator Functions")
		s.println("4. Logout")
		s.println("5. Exit System")

		choice, ok := s.prompt("\nEnter your choice (1-5): ")
		if !ok {
			s.running = false
			return
		}
		switch choice {
		case "1":
			s.manageUsers(ctx, types.RoleCoordinator)
		case "2":
			s.generateTotalInvoice(ctx)
		case "3":
			if done := s.coordinatorFunctions(ctx); done {
				return
			}
		case "4":
			s.logout()
			return
		case "5":
			s.running = false
			return
		default:
			s.println("Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) coordinatorMenu(ctx context.Context) {
	for {
		if done := s.coordinatorFunctions(ctx); done {
			return
		}
	}
}

// coordinatorFunctions runs the shared coordinator menu once. It returns
// true when the session ended (logout or exit), false when the user chose
// to go back to the previous menu.
func (s *Shell) coordinatorFunctions(ctx context.Context) bool {
	for {
		s.displayHeader()
		s.println("=== TRIP COORDINATOR MENU ===")
		s.println("1. Manage Trips")
		s.println("2. Manage Travellers")
		s.println("3. Manage Trip Legs")
		s.println("4. Manage Trip Assignments")
		s.println("5. Generate Itinerary")
		s.println("6. Handle Payments")
		s.println("7. Back to Previous Menu")
		s.println("8. Logout")
		s.println("9. Exit System")

		choice, ok := s.prompt("\nEnter your choice (1-9): ")
		if !ok {
			s.running = false
			return true
		}
		switch choice {
		case "1":
			s.manageTrips(ctx)
		case "2":
			s.manageTravellers(ctx)
		case "3":
			s.manageTripLegs(ctx)
		case "4":
			s.manageTripAssignments(ctx)
		case "5":
			s.generateItinerary(ctx)
		case "6":
			s.handlePayments(ctx)
		case "7":
			return false
		case "8":
			s.logout()
			return true
		case "9":
			s.running = false
			return true
		default:
			s.println("Invalid choice. Please try again.")
		}
	}
}

// manageUsers lists, creates and deletes accounts of one role. The models
// layer enforces whether the current user may manage that role.
func (s *Shell) manageUsers(ctx context.Context, role types.Role) {
	for {
		s.displayHeader()
		s.printf("=== MANAGE %sS ===\n", strings.ToUpper(string(role)))

		accounts, err := s.users.ListUsersByRole(ctx, role)
		if err != nil {
			s.reportError(err)
			return
		}
		s.printf("\nCurrent accounts: %d\n", len(accounts))
		for i, account := range accounts {
			s.printf("%d. %s (username: %s)\n", i+1, account.Name, account.Username)
		}

		s.println("\n1. Add Account")
		s.println("2. Delete Account")
		s.println("3. Back")

		choice, ok := s.prompt("\nEnter your choice (1-3): ")
		if !ok {
			s.running = false
			return
		}
		switch choice {
		case "1":
			username, ok := s.prompt("Username: ")
			if !ok {
				return
			}
			password, ok := s.prompt("Password: ")
			if !ok {
				return
			}
			name, ok := s.prompt("Full Name: ")
			if !ok {
				return
			}
			created, err := s.users.CreateUser(ctx, s.auth.CurrentUser(), username, password, name, role)
			if err != nil {
				s.reportError(err)
				continue
			}
			s.printf("Account '%s' created successfully with ID: %s\n", created.Username, created.ID)
			s.reloadSession(ctx)
		case "2":
			if len(accounts) == 0 {
				s.println("No accounts available to delete.")
				continue
			}
			idx, ok := s.pickIndex("\nSelect account to delete (number): ", len(accounts))
			if !ok {
				continue
			}
			account := accounts[idx]
			if !s.confirm("Are you sure you want to PERMANENTLY delete '" + account.Name + "'? This cannot be undone! (y/n): ") {
				s.println("Deletion cancelled.")
				continue
			}
			if err := s.users.DeleteUser(ctx, s.auth.CurrentUser(), account.ID); err != nil {
				s.reportError(err)
				continue
			}
			s.printf("Account '%s' permanently deleted!\n", account.Name)
			s.reloadSession(ctx)
		case "3":
			return
		default:
			s.println("Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) reloadSession(ctx context.Context) {
	if err := s.auth.Reload(ctx); err != nil {
		s.reportError(err)
	}
}

// userTrips applies role-based filtering: coordinators see only their own
// trips, managers and administrators see everything.
func (s *Shell) userTrips(ctx context.Context) ([]*types.Trip, error) {
	user := s.auth.CurrentUser()
	if user != nil && user.Role == types.RoleCoordinator {
		return s.trips.ListTripsForCoordinator(ctx, user.ID)
	}
	return s.trips.ListTrips(ctx)
}

func (s *Shell) manageTrips(ctx context.Context) {
	for {
		s.displayHeader()
		s.println("=== MANAGE TRIPS ===")

		trips, err := s.userTrips(ctx)
		if err != nil {
			s.reportError(err)
			return
		}
		s.printf("\nYour trips: %d\n", len(trips))

		s.println("\n1. View All Trips")
		s.println("2. Create New Trip")
		s.println("3. Update Trip")
		s.println("4. Delete Trip")
		s.println("5. Back to Main Menu")

		choice, ok := s.prompt("\nEnter your choice (1-5): ")
		if !ok {
			s.running = false
			return
		}
		switch choice {
		case "1":
			s.println("\n=== ALL TRIPS ===")
			if len(trips) == 0 {
				s.println("No trips found.")
				continue
			}
			for i, trip := range trips {
				status := "Inactive"
				if trip.IsActive {
					status = "Active"
				}
				coordinator := "None"
				if trip.Coordinator.Resolved() {
					coordinator = trip.Coordinator.Value.Name
				}
				s.printf("%d. %s (ID: %s)\n", i+1, trip.Name, trip.ID)
				s.printf("   Start: %s, Duration: %d days\n", trip.StartDate.Format("2006-01-02"), trip.DurationDays)
				s.printf("   Coordinator: %s\n", coordinator)
				s.printf("   Travellers: %d, Status: %s\n\n", len(trip.TravellerIDs), status)
			}
		case "2":
			s.println("\n=== CREATE NEW TRIP ===")
			name, ok := s.prompt("Trip Name: ")
			if !ok {
				return
			}
			startDate, ok := s.promptDate("Start Date (YYYY-MM-DD): ")
			if !ok {
				continue
			}
			duration, ok := s.promptInt("Duration (days): ")
			if !ok {
				continue
			}
			creator := s.auth.CurrentUser()
			if creator != nil && !types.CanOwnTrips(creator.Role) {
				s.println("Note: Only Trip Coordinators can be assigned to trips.")
				s.println("Please assign this trip to a coordinator later.")
			}
			trip, err := s.trips.CreateTrip(ctx, creator, name, startDate, duration)
			if err != nil {
				s.reportError(err)
				continue
			}
			s.printf("Trip '%s' created successfully with ID: %s\n", trip.Name, trip.ID)
		case "3":
			if len(trips) == 0 {
				s.println("No trips available to update.")
				continue
			}
			s.println("\n=== UPDATE TRIP ===")
			for i, trip := range trips {
				s.printf("%d. %s (ID: %s)\n", i+1, trip.Name, trip.ID)
			}
			idx, ok := s.pickIndex("\nSelect trip to update (number): ", len(trips))
			if !ok {
				continue
			}
			trip := trips[idx]
			s.printf("\nUpdating: %s\n", trip.Name)

			name, ok := s.promptDefault("New name", trip.Name)
			if !ok {
				return
			}
			startRaw, ok := s.promptDefault("New start date (YYYY-MM-DD)", trip.StartDate.Format("2006-01-02"))
			if !ok {
				return
			}
			startDate, err := time.Parse("2006-01-02", startRaw)
			if err != nil {
				s.println("Invalid date format. Please use YYYY-MM-DD.")
				continue
			}
			durationRaw, ok := s.promptDefault("New duration (days)", strconv.Itoa(trip.DurationDays))
			if !ok {
				return
			}
			duration, err := strconv.Atoi(durationRaw)
			if err != nil {
				s.println("Please enter a valid number.")
				continue
			}

			trip.Name = name
			trip.StartDate = startDate
			trip.DurationDays = duration
			if err := s.trips.UpdateTrip(ctx, trip); err != nil {
				s.reportError(err)
				continue
			}
			s.println("Trip updated successfully!")
		case "4":
			if len(trips) == 0 {
				s.println("No trips available to delete.")
				continue
			}
			s.println("\n=== DELETE TRIP ===")
			for i, trip := range trips {
				s.printf("%d. %s (ID: %s)\n", i+1, trip.Name, trip.ID)
			}
			idx, ok := s.pickIndex("\nSelect trip to delete (number): ", len(trips))
			if !ok {
				continue
			}
			trip := trips[idx]
			if !s.confirm("Are you sure you want to PERMANENTLY delete '" + trip.Name + "'? This cannot be undone! (y/n): ") {
				s.println("Deletion cancelled.")
				continue
			}
			if err := s.trips.DeleteTrip(ctx, trip.ID); err != nil {
				s.reportError(err)
				continue
			}
			s.println("Trip permanently deleted!")
		case "5":
			return
		default:
			s.println("Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) manageTravellers(ctx context.Context) {
	for {
		s.displayHeader()
		s.println("=== MANAGE TRAVELLERS ===")

		travellers, err := s.travellers.ListTravellers(ctx)
		if err != nil {
			s.reportError(err)
			return
		}
		s.printf("\nCurrent travellers in system: %d\n", len(travellers))

		s.println("\n1. View All Travellers")
		s.println("2. Add New Traveller")
		s.println("3. Delete Traveller")
		s.println("4. Back")

		choice, ok := s.prompt("\nEnter your choice (1-4): ")
		if !ok {
			s.running = false
			return
		}
		switch choice {
		case "1":
			s.println("\n=== ALL TRAVELLERS ===")
			if len(travellers) == 0 {
				s.println("No travellers found.")
				continue
			}
			for i, traveller := range travellers {
				s.printf("%d. %s (ID: %s)\n", i+1, traveller.Name, traveller.ID)
				s.printf("   Address: %s\n", traveller.Address)
				s.printf("   Date of Birth: %s\n", traveller.DateOfBirth.Format("2006-01-02"))
				s.printf("   Emergency Contact: %s\n", traveller.EmergencyContact)
				s.printf("   Government ID: %s\n\n", traveller.GovernmentID)
			}
		case "2":
			s.println("\n=== ADD NEW TRAVELLER ===")
			name, ok := s.prompt("Full Name: ")
			if !ok {
				return
			}
			address, ok := s.prompt("Address: ")
			if !ok {
				return
			}
			dob, ok := s.promptDate("Date of Birth (YYYY-MM-DD): ")
			if !ok {
				continue
			}
			emergencyContact, ok := s.prompt("Emergency Contact: ")
			if !ok {
				return
			}
			governmentID, ok := s.prompt("Government ID: ")
			if !ok {
				return
			}
			traveller, err := s.travellers.CreateTraveller(ctx, name, address, dob, emergencyContact, governmentID)
			if err != nil {
				s.reportError(err)
				continue
			}
			s.printf("Traveller '%s' added successfully with ID: %s\n", traveller.Name, traveller.ID)
		case "3":
			if len(travellers) == 0 {
				s.println("No travellers available to delete.")
				continue
			}
			s.println("\n=== DELETE TRAVELLER ===")
			for i, traveller := range travellers {
				s.printf("%d. %s (ID: %s)\n", i+1, traveller.Name, traveller.ID)
			}
			idx, ok := s.pickIndex("\nSelect traveller to delete (number): ", len(travellers))
			if !ok {
				continue
			}
			traveller := travellers[idx]
			if !s.confirm("Are you sure you want to PERMANENTLY delete '" + traveller.Name + "'? This cannot be undone! (y/n): ") {
				s.println("Deletion cancelled.")
				continue
			}
			if err := s.travellers.DeleteTraveller(ctx, traveller.ID); err != nil {
				s.reportError(err)
				continue
			}
			s.printf("Traveller '%s' permanently deleted!\n", traveller.Name)
		case "4":
			return
		default:
			s.println("Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) manageTripLegs(ctx context.Context) {
	for {
		s.displayHeader()
		s.println("=== MANAGE TRIP LEGS ===")

		trips, err := s.userTrips(ctx)
		if err != nil {
			s.reportError(err)
			return
		}
		if len(trips) == 0 {
			s.println("No trips available. Please create a trip first.")
			return
		}

		s.println("\nSelect a trip to manage its legs:")
		for i, trip := range trips {
			s.printf("%d. %s (ID: %s) - %d legs\n", i+1, trip.Name, trip.ID, len(trip.Legs))
		}
		s.printf("%d. Back to Main Menu\n", len(trips)+1)

		n, ok := s.promptInt("\nEnter your choice: ")
		if !ok {
			continue
		}
		if n == len(trips)+1 {
			return
		}
		if n < 1 || n > len(trips) {
			s.println("Invalid choice.")
			continue
		}
		s.manageLegsForTrip(ctx, trips[n-1])
	}
}

func (s *Shell) manageLegsForTrip(ctx context.Context, trip *types.Trip) {
	for {
		s.displayHeader()
		s.printf("=== MANAGING LEGS FOR: %s ===\n", trip.Name)
		s.printf("Trip ID: %s\n", trip.ID)
		s.printf("Current legs: %d\n", len(trip.Legs))

		ordered := trip.Itinerary()
		if len(ordered) > 0 {
			s.println("\nCurrent Legs:")
			for i, leg := range ordered {
				s.printf("%d. %s\n", i+1, leg.String())
				s.printf("   Type: %s, Cost: £%s\n", leg.Type, leg.Cost.StringFixed(2))
			}
		} else {
			s.println("\nNo legs added yet.")
		}

		s.println("\n1. Add New Leg")
		s.println("2. Update Leg")
		s.println("3. Delete Leg")
		s.println("4. Generate Itinerary Preview")
		s.println("5. Back to Trip Selection")

		choice, ok := s.prompt("\nEnter your choice (1-5): ")
		if !ok {
			s.running = false
			return
		}
		switch choice {
		case "1":
			leg, ok := s.promptLeg()
			if !ok {
				continue
			}
			if _, err := s.trips.AddLeg(ctx, trip.ID, leg); err != nil {
				s.reportError(err)
				continue
			}
			s.println("Trip leg added successfully!")
			s.refreshTrip(ctx, trip)
		case "2":
			if len(ordered) == 0 {
				s.println("No legs available to update.")
				continue
			}
			s.println("\nSelect leg to update:")
			for i, leg := range ordered {
				s.printf("%d. %s\n", i+1, leg.String())
			}
			idx, ok := s.pickIndex("Enter leg number: ", len(ordered))
			if !ok {
				continue
			}
			updated, ok := s.promptLeg()
			if !ok {
				continue
			}
			updated.ID = ordered[idx].ID
			updated.Sequence = ordered[idx].Sequence
			if err := s.trips.UpdateLeg(ctx, trip.ID, updated); err != nil {
				s.reportError(err)
				continue
			}
			s.println("Leg updated successfully!")
			s.refreshTrip(ctx, trip)
		case "3":
			if len(ordered) == 0 {
				s.println("No legs available to delete.")
				continue
			}
			s.println("\nSelect leg to delete:")
			for i, leg := range ordered {
				s.printf("%d. %s\n", i+1, leg.String())
			}
			idx, ok := s.pickIndex("Enter leg number: ", len(ordered))
			if !ok {
				continue
			}
			leg := ordered[idx]
			if !s.confirm("Delete leg: " + leg.String() + "? (y/n): ") {
				s.println("Deletion cancelled.")
				continue
			}
			if err := s.trips.DeleteLeg(ctx, trip.ID, leg.ID); err != nil {
				s.reportError(err)
				continue
			}
			s.println("Leg deleted successfully!")
			s.refreshTrip(ctx, trip)
		case "4":
			s.println("\n=== ITINERARY PREVIEW ===")
			s.println(trip.RenderItinerary())
		case "5":
			return
		default:
			s.println("Invalid choice. Please try again.")
		}
	}
}

// promptLeg gathers the fields of a new or replacement leg. ID and
// Sequence are assigned by the models layer on add.
func (s *Shell) promptLeg() (types.TripLeg, bool) {
	var leg types.TripLeg

	startLocation, ok := s.prompt("Start Location: ")
	if !ok {
		return leg, false
	}
	destination, ok := s.prompt("Destination: ")
	if !ok {
		return leg, false
	}
	provider, ok := s.prompt("Transport Provider: ")
	if !ok {
		return leg, false
	}

	modes := types.TransportModes()
	s.println("\nTransport Modes:")
	for i, mode := range modes {
		s.printf("%d. %s\n", i+1, mode)
	}
	modeIdx, ok := s.pickIndex("Select transport mode (number): ", len(modes))
	if !ok {
		return leg, false
	}

	legTypes := types.LegTypes()
	s.println("\nLeg Types:")
	for i, legType := range legTypes {
		s.printf("%d. %s\n", i+1, legType)
	}
	typeIdx, ok := s.pickIndex("Select leg type (number): ", len(legTypes))
	if !ok {
		return leg, false
	}

	cost, ok := s.promptDecimal("Cost (£): ", "0.0")
	if !ok {
		return leg, false
	}
	description, ok := s.prompt("Description/Notes: ")
	if !ok {
		return leg, false
	}

	leg.StartLocation = startLocation
	leg.Destination = destination
	leg.Provider = provider
	leg.Mode = modes[modeIdx]
	leg.Type = legTypes[typeIdx]
	leg.Cost = cost
	leg.Description = description
	return leg, true
}

func (s *Shell) refreshTrip(ctx context.Context, trip *types.Trip) {
	fresh, err := s.trips.GetTripByID(ctx, trip.ID)
	if err != nil {
		s.reportError(err)
		return
	}
	*trip = *fresh
}

func (s *Shell) manageTripAssignments(ctx context.Context) {
	for {
		s.displayHeader()
		s.println("=== MANAGE TRIP ASSIGNMENTS ===")

		trips, err := s.userTrips(ctx)
		if err != nil {
			s.reportError(err)
			return
		}
		if len(trips) == 0 {
			s.println("No trips available. Please create a trip first.")
			return
		}

		s.println("\nSelect a trip to manage traveller assignments:")
		for i, trip := range trips {
			s.printf("%d. %s - %d travellers assigned\n", i+1, trip.Name, len(trip.TravellerIDs))
		}
		s.printf("%d. Back to Main Menu\n", len(trips)+1)

		n, ok := s.promptInt("\nEnter your choice: ")
		if !ok {
			continue
		}
		if n == len(trips)+1 {
			return
		}
		if n < 1 || n > len(trips) {
			s.println("Invalid choice.")
			continue
		}
		s.manageAssignmentsForTrip(ctx, trips[n-1])
	}
}

func (s *Shell) manageAssignmentsForTrip(ctx context.Context, trip *types.Trip) {
	for {
		s.displayHeader()
		s.printf("=== MANAGING ASSIGNMENTS FOR: %s ===\n", trip.Name)
		s.printf("Trip ID: %s\n", trip.ID)

		allTravellers, err := s.travellers.ListTravellers(ctx)
		if err != nil {
			s.reportError(err)
			return
		}

		var assigned, available []*types.Traveller
		for _, traveller := range allTravellers {
			if trip.HasTraveller(traveller.ID) {
				assigned = append(assigned, traveller)
			} else {
				available = append(available, traveller)
			}
		}

		s.printf("\nCurrently assigned travellers (%d):\n", len(assigned))
		if len(assigned) == 0 {
			s.println("No travellers assigned yet.")
		}
		for i, traveller := range assigned {
			s.printf("%d. %s (ID: %s)\n", i+1, traveller.Name, traveller.ID)
		}

		s.printf("\nAvailable travellers (%d):\n", len(available))
		if len(available) == 0 {
			s.println("No available travellers.")
		}
		for i, traveller := range available {
			s.printf("%d. %s (ID: %s)\n", i+1, traveller.Name, traveller.ID)
		}

		s.println("\n1. Assign Traveller to Trip")
		s.println("2. Remove Traveller from Trip")
		s.println("3. Back to Trip Selection")

		choice, ok := s.prompt("\nEnter your choice (1-3): ")
		if !ok {
			s.running = false
			return
		}
		switch choice {
		case "1":
			if len(available) == 0 {
				s.println("No available travellers to assign.")
				continue
			}
			idx, ok := s.pickIndex("\nEnter traveller number: ", len(available))
			if !ok {
				continue
			}
			traveller := available[idx]
			if err := s.trips.AssignTraveller(ctx, trip.ID, traveller.ID); err != nil {
				s.reportError(err)
				continue
			}
			s.printf("Traveller '%s' assigned successfully!\n", traveller.Name)
			s.refreshTrip(ctx, trip)
		case "2":
			if len(assigned) == 0 {
				s.println("No travellers assigned to remove.")
				continue
			}
			idx, ok := s.pickIndex("\nEnter traveller number: ", len(assigned))
			if !ok {
				continue
			}
			traveller := assigned[idx]
			if err := s.trips.RemoveTraveller(ctx, trip.ID, traveller.ID); err != nil {
				s.reportError(err)
				continue
			}
			s.printf("Traveller '%s' removed successfully!\n", traveller.Name)
			s.refreshTrip(ctx, trip)
		case "3":
			return
		default:
			s.println("Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) generateItinerary(ctx context.Context) {
	s.displayHeader()
	s.println("=== GENERATE ITINERARY ===")

	trips, err := s.userTrips(ctx)
	if err != nil {
		s.reportError(err)
		return
	}
	if len(trips) == 0 {
		s.println("No trips available.")
		return
	}

	for i, trip := range trips {
		s.printf("%d. %s (ID: %s)\n", i+1, trip.Name, trip.ID)
	}
	idx, ok := s.pickIndex("\nSelect trip (number): ", len(trips))
	if !ok {
		return
	}
	s.println("")
	s.println(trips[idx].RenderItinerary())
}

func (s *Shell) viewAllInvoices(ctx context.Context) {
	s.displayHeader()
	s.println("=== ALL INVOICES ===")

	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		s.reportError(err)
		return
	}
	if len(invoices) == 0 {
		s.println("No invoices found.")
		return
	}
	for i, invoice := range invoices {
		s.printf("%d. %s\n", i+1, invoice.String())
		s.printf("   Balance: £%s, Payments: %d\n", invoice.Balance().StringFixed(2), len(invoice.Payments))
	}
}

// generateTotalInvoice raises an invoice for a trip. The invoice total is
// the sum of the trip's leg costs at the moment of creation.
func (s *Shell) generateTotalInvoice(ctx context.Context) {
	s.displayHeader()
	s.println("=== GENERATE TOTAL INVOICE ===")

	trips, err := s.trips.ListTrips(ctx)
	if err != nil {
		s.reportError(err)
		return
	}
	if len(trips) == 0 {
		s.println("No trips available.")
		return
	}

	for i, trip := range trips {
		s.printf("%d. %s - estimated cost £%s\n", i+1, trip.Name, trip.TotalLegCost().StringFixed(2))
	}
	idx, ok := s.pickIndex("\nSelect trip (number): ", len(trips))
	if !ok {
		return
	}

	invoice, err := s.invoices.CreateInvoice(ctx, trips[idx].ID)
	if err != nil {
		s.reportError(err)
		return
	}
	s.printf("Invoice %s created for '%s' with total £%s\n",
		invoice.ID, trips[idx].Name, invoice.TotalAmount.StringFixed(2))
}

func (s *Shell) handlePayments(ctx context.Context) {
	for {
		s.displayHeader()
		s.println("=== HANDLE PAYMENTS ===")

		invoices, err := s.invoices.ListInvoices(ctx)
		if err != nil {
			s.reportError(err)
			return
		}
		if len(invoices) == 0 {
			s.println("No invoices found.")
			return
		}

		for i, invoice := range invoices {
			s.printf("%d. %s\n", i+1, invoice.String())
			s.printf("   Balance: £%s\n", invoice.Balance().StringFixed(2))
		}
		s.printf("%d. Back\n", len(invoices)+1)

		n, ok := s.promptInt("\nSelect invoice: ")
		if !ok {
			continue
		}
		if n == len(invoices)+1 {
			return
		}
		if n < 1 || n > len(invoices) {
			s.println("Invalid selection.")
			continue
		}
		invoice := invoices[n-1]

		amount, ok := s.promptDecimal("Payment amount (£): ", "")
		if !ok {
			continue
		}
		method, ok := s.prompt("Payment method: ")
		if !ok {
			return
		}

		if _, err := s.invoices.AddPayment(ctx, invoice.ID, amount, time.Now(), method); err != nil {
			s.reportError(err)
			continue
		}
		s.printf("Payment of £%s recorded.\n", amount.StringFixed(2))

		updated, err := s.invoices.GetInvoice(ctx, invoice.ID)
		if err != nil {
			s.reportError(err)
			continue
		}

		// Settled invoices flip to Paid here, not in the record type.
		if updated.IsFullyPaid() && updated.Status == types.InvoicePending {
			if err := s.invoices.SetStatus(ctx, updated.ID, types.InvoicePaid); err != nil {
				s.reportError(err)
				continue
			}
			s.println("Invoice is now fully paid.")
		} else {
			s.printf("Remaining balance: £%s\n", updated.Balance().StringFixed(2))
		}
	}
}

func (s *Shell) reportsMenu(ctx context.Context) {
	for {
		s.displayHeader()
		s.println("=== GENERATE REPORTS ===")
		s.println("1. Trip Statistics")
		s.println("2. Financial Summary")
		s.println("3. Traveller Statistics")
		s.println("4. Revenue Trends")
		s.println("5. Back")

		choice, ok := s.prompt("\nEnter your choice (1-5): ")
		if !ok {
			s.running = false
			return
		}

		var (
			name    string
			content string
			err     error
		)
		switch choice {
		case "1":
			name = "trip_statistics"
			content, err = s.buildTripStatistics(ctx)
		case "2":
			name = "financial_summary"
			content, err = s.buildFinancialSummary(ctx)
		case "3":
			name = "traveller_statistics"
			content, err = s.buildTravellerStatistics(ctx)
		case "4":
			name = "revenue_trends"
			content, err = s.buildRevenueTrends(ctx)
		case "5":
			return
		default:
			s.println("Invalid choice. Please try again.")
			continue
		}

		if err != nil {
			s.reportError(err)
			continue
		}
		s.println("")
		s.println(content)

		if s.confirm("Save report to file? (y/n): ") {
			path, err := s.reports.WriteReport(name, content)
			if err != nil {
				s.reportError(err)
				continue
			}
			s.printf("Report saved to %s\n", path)
		}
	}
}

func (s *Shell) buildTripStatistics(ctx context.Context) (string, error) {
	trips, err := s.trips.ListTrips(ctx)
	if err != nil {
		return "", err
	}
	stats, err := s.reports.BuildTripStatistics(trips)
	if err != nil {
		return "", err
	}
	return reports.RenderTripStatistics(stats), nil
}

func (s *Shell) buildFinancialSummary(ctx context.Context) (string, error) {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return "", err
	}
	summary, err := s.reports.BuildFinancialSummary(invoices)
	if err != nil {
		return "", err
	}
	return reports.RenderFinancialSummary(summary), nil
}

func (s *Shell) buildTravellerStatistics(ctx context.Context) (string, error) {
	travellers, err := s.travellers.ListTravellers(ctx)
	if err != nil {
		return "", err
	}
	stats, err := s.reports.BuildTravellerStatistics(travellers, time.Now())
	if err != nil {
		return "", err
	}
	return reports.RenderTravellerStatistics(stats), nil
}

func (s *Shell) buildRevenueTrends(ctx context.Context) (string, error) {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return "", err
	}
	trips, err := s.trips.ListTrips(ctx)
	if err != nil {
		return "", err
	}
	trends, err := s.reports.BuildRevenueTrends(invoices, trips)
	if err != nil {
		return "", err
	}
	return reports.RenderRevenueTrends(trends), nil
}
