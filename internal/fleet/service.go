package fleet

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hangar/internal/apperr"
)

// Service owns the aircraft and aircraft_parts tables.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func validateAircraft(model, registration, manufacturer string) error {
	if strings.TrimSpace(model) == "" || strings.TrimSpace(registration) == "" || strings.TrimSpace(manufacturer) == "" {
		return fmt.Errorf("%w: model, registration and manufacturer are required", apperr.ErrValidation)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

// RegisterAircraft adds a new airframe. Registrations are unique; a second
// aircraft with the same registration is rejected before any write.
func (s *Service) RegisterAircraft(ctx context.Context, model, registration string, year int, manufacturer string, capacity *int) (*Aircraft, error) {
	if err := validateAircraft(model, registration, manufacturer); err != nil {
		return nil, err
	}

	var existing Aircraft
	err := s.db.WithContext(ctx).Where("registration = ?", registration).First(&existing).Error
	if err == nil {
		return nil, apperr.ErrDuplicateRegistration
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check registration: %w", err)
	}

	ac := Aircraft{
		Model:             model,
		Registration:      registration,
		YearOfManufacture: year,
		Manufacturer:      manufacturer,
		PassengerCapacity: capacity,
		Status:            "Active",
	}
	if err := s.db.WithContext(ctx).Create(&ac).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("register aircraft: %w", err)
	}
	return &ac, nil
}

// ListAircraft returns the registry in insertion order.
func (s *Service) ListAircraft(ctx context.Context) ([]Aircraft, error) {
	var fleet []Aircraft
	if err := s.db.WithContext(ctx).Order("id").Find(&fleet).Error; err != nil {
		return nil, fmt.Errorf("list aircraft: %w", err)
	}
	return fleet, nil
}

func (s *Service) GetAircraft(ctx context.Context, id uint) (*Aircraft, error) {
	var ac Aircraft
	err := s.db.WithContext(ctx).First(&ac, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get aircraft %d: %w", id, err)
	}
	return &ac, nil
}

// UpdateAircraft rewrites the editable fields of an existing airframe.
func (s *Service) UpdateAircraft(ctx context.Context, id uint, model, registration string, year int, manufacturer string, capacity *int) error {
	if err := validateAircraft(model, registration, manufacturer); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&Aircraft{}).Where("id = ?", id).Updates(map[string]any{
		"model":               model,
		"registration":        registration,
		"year_of_manufacture": year,
		"manufacturer":        manufacturer,
		"passenger_capacity":  capacity,
	})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return apperr.ErrDuplicateRegistration
		}
		return fmt.Errorf("update aircraft %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteAircraft removes an airframe and every part linked to it. Deleting
// an absent id is not an error.
func (s *Service) DeleteAircraft(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("aircraft_id = ?", id).Delete(&AircraftPart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Aircraft{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete aircraft %d: %w", id, err)
	}
	return nil
}

// AddPart links a new part to an airframe. Part numbers are unique across
// the whole fleet, not per aircraft.
func (s *Service) AddPart(ctx context.Context, aircraftID uint, partName, partNumber string) (*AircraftPart, error) {
	if strings.TrimSpace(partName) == "" || strings.TrimSpace(partNumber) == "" {
		return nil, fmt.Errorf("%w: part name and part number are required", apperr.ErrValidation)
	}

	var existing AircraftPart
	err := s.db.WithContext(ctx).Where("part_number = ?", partNumber).First(&existing).Error
	if err == nil {
		return nil, apperr.ErrDuplicatePartNumber
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check part number: %w", err)
	}

	part := AircraftPart{
		PartName:   partName,
		PartNumber: partNumber,
		AircraftID: aircraftID,
	}
	if err := s.db.WithContext(ctx).Create(&part).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.ErrDuplicatePartNumber
		}
		return nil, fmt.Errorf("add part: %w", err)
	}
	return &part, nil
}

// PartsByAircraft returns the parts fitted to one airframe, oldest first.
func (s *Service) PartsByAircraft(ctx context.Context, aircraftID uint) ([]AircraftPart, error) {
	var parts []AircraftPart
	err := s.db.WithContext(ctx).Where("aircraft_id = ?", aircraftID).Order("id").Find(&parts).Error
	if err != nil {
		return nil, fmt.Errorf("list parts for aircraft %d: %w", aircraftID, err)
	}
	return parts, nil
}

// DeletePart removes one linked part. Deleting an absent id is not an error.
func (s *Service) DeletePart(ctx context.Context, partID uint) error {
	if err := s.db.WithContext(ctx).Delete(&AircraftPart{}, partID).Error; err != nil {
		return fmt.Errorf("delete linked part %d: %w", partID, err)
	}
	return nil
}
