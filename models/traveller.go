package models

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/errors"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/utils"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/types"
)

// TravellerModel manages traveller records. Travellers are independent of
// trips; deleting one cascades into every trip's assignment list.
type TravellerModel struct {
	store store.TravellerStore
}

func NewTravellerModel(store store.TravellerStore) *TravellerModel {
	return &TravellerModel{store: store}
}

func (tm *TravellerModel) CreateTraveller(ctx context.Context, name, address string, dateOfBirth time.Time, emergencyContact, governmentID string) (*types.Traveller, error) {
	log := logger.GetLogger()

	if err := validateTraveller(name, dateOfBirth); err != nil {
		return nil, err
	}

	traveller := &types.Traveller{
		ID:               utils.NewRecordID(utils.PrefixTraveller),
		Name:             name,
		Address:          address,
		DateOfBirth:      dateOfBirth,
		EmergencyContact: emergencyContact,
		GovernmentID:     governmentID,
	}

	if err := tm.store.SaveTraveller(ctx, traveller); err != nil {
		return nil, errors.NewStorageError(err)
	}

	log.Infow("Traveller created", "traveller_id", traveller.ID, "name", traveller.Name)
	return traveller, nil
}

func (tm *TravellerModel) UpdateTraveller(ctx context.Context, traveller *types.Traveller) error {
	if err := validateTraveller(traveller.Name, traveller.DateOfBirth); err != nil {
		return err
	}

	if _, err := tm.store.GetTraveller(ctx, traveller.ID); err != nil {
		return errors.NotFound("Traveller", traveller.ID)
	}

	if err := tm.store.SaveTraveller(ctx, traveller); err != nil {
		return errors.NewStorageError(err)
	}
	return nil
}

func (tm *TravellerModel) GetTraveller(ctx context.Context, id string) (*types.Traveller, error) {
	traveller, err := tm.store.GetTraveller(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Traveller", id)
	}
	return traveller, nil
}

func (tm *TravellerModel) ListTravellers(ctx context.Context) ([]*types.Traveller, error) {
	travellers, err := tm.store.ListTravellers(ctx)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	return travellers, nil
}

// DeleteTraveller permanently removes a traveller. The store strips the
// identifier from every trip that references it.
func (tm *TravellerModel) DeleteTraveller(ctx context.Context, id string) error {
	if err := tm.store.DeleteTraveller(ctx, id); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.NotFound("Traveller", id)
		}
		return errors.NewStorageError(err)
	}
	return nil
}

func validateTraveller(name string, dateOfBirth time.Time) error {
	var validationErrors []string

	if name == "" {
		validationErrors = append(validationErrors, "traveller name is required")
	}
	if dateOfBirth.IsZero() {
		validationErrors = append(validationErrors, "date of birth is required")
	}

	if len(validationErrors) > 0 {
		return errors.ValidationFailed(
			"Invalid traveller data",
			strings.Join(validationErrors, "; "),
		)
	}
	return nil
}
