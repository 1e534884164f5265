// Package cli implements the interactive console shell. All record
// mutations go through the models layer; the shell only gathers input and
// renders results.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/auth"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/reports"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/models"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

const headerBanner = "    SOLENT TRIPS - TRAVEL MANAGEMENT SYSTEM"

// Shell drives the menu loop over stdin/stdout.
type Shell struct {
	in  *bufio.Scanner
	out io.Writer

	auth       *auth.Service
	users      *models.UserModel
	travellers *models.TravellerModel
	trips      *models.TripModel
	invoices   *models.InvoiceModel
	reports    *reports.Generator

	running bool
}

// Deps carries the collaborators the shell needs.
type Deps struct {
	Auth       *auth.Service
	Users      *models.UserModel
	Travellers *models.TravellerModel
	Trips      *models.TripModel
	Invoices   *models.InvoiceModel
	Reports    *reports.Generator
}

func NewShell(in io.Reader, out io.Writer, deps Deps) *Shell {
	return &Shell{
		in:         bufio.NewScanner(in),
		out:        out,
		auth:       deps.Auth,
		users:      deps.Users,
		travellers: deps.Travellers,
		trips:      deps.Trips,
		invoices:   deps.Invoices,
		reports:    deps.Reports,
	}
}

// Run executes the main application loop until the user exits or input
// is exhausted.
func (s *Shell) Run(ctx context.Context) {
	log := logger.GetLogger()
	s.running = true

	for s.running {
		user := s.auth.CurrentUser()
		if user == nil {
			if !s.loginMenu() {
				return
			}
			continue
		}

		switch user.Role {
		case types.RoleAdministrator:
			s.adminMenu(ctx)
		case types.RoleManager:
			s.managerMenu(ctx)
		case types.RoleCoordinator:
			s.coordinatorMenu(ctx)
		default:
			log.Warnw("Unknown role on session user", "role", user.Role)
			s.println("Unknown user role. Logging out...")
			s.auth.Logout()
		}
	}
	s.println("\nThank you for using Solent Trips Travel Management System!")
}

func (s *Shell) displayHeader() {
	s.println(strings.Repeat("=", 50))
	s.println(headerBanner)
	s.println(strings.Repeat("=", 50))
	if user := s.auth.CurrentUser(); user != nil {
		s.printf("Logged in as: %s (%s)\n", user.Name, user.Role)
	}
	s.println("")
}

// loginMenu returns false when stdin is exhausted.
func (s *Shell) loginMenu() bool {
	s.displayHeader()
	s.println("=== LOGIN ===")

	username, ok := s.prompt("Username: ")
	if !ok {
		return false
	}
	password, ok := s.prompt("Password: ")
	if !ok {
		return false
	}

	_, message, _ := s.auth.Login(username, password)
	s.printf("\n%s\n\n", message)
	return true
}

func (s *Shell) logout() {
	s.auth.Logout()
	s.println("Logged out successfully.")
}

// prompt reads one line; ok is false on EOF.
func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptDefault returns fallback when the user enters a blank line.
func (s *Shell) promptDefault(label, fallback string) (string, bool) {
	value, ok := s.prompt(fmt.Sprintf("%s [%s]: ", label, fallback))
	if !ok {
		return "", false
	}
	if value == "" {
		return fallback, true
	}
	return value, true
}

func (s *Shell) promptInt(label string) (int, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.println("Please enter a valid number.")
		return 0, false
	}
	return n, true
}

func (s *Shell) promptDecimal(label, fallback string) (decimal.Decimal, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return decimal.Zero, false
	}
	if raw == "" {
		raw = fallback
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		s.println("Please enter a valid amount.")
		return decimal.Zero, false
	}
	return value, true
}

func (s *Shell) promptDate(label string) (time.Time, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		s.println("Invalid date format. Please use YYYY-MM-DD.")
		return time.Time{}, false
	}
	return date, true
}

func (s *Shell) confirm(label string) bool {
	answer, ok := s.prompt(label)
	if !ok {
		return false
	}
	return strings.EqualFold(answer, "y")
}

// pickIndex shows a 1-based selection over count items; returns the
// zero-based index.
func (s *Shell) pickIndex(label string, count int) (int, bool) {
	n, ok := s.promptInt(label)
	if !ok {
		return 0, false
	}
	if n < 1 || n > count {
		s.println("Invalid selection.")
		return 0, false
	}
	return n - 1, true
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// reportError prints a model-layer failure as a user-facing message.
func (s *Shell) reportError(err error) {
	s.printf("Error: %s\n", err.Error())
}
