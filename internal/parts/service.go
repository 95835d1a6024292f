package parts

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"hangar/internal/apperr"
)

// DateLayout is the only accepted form for reminder dates.
const DateLayout = "2006-01-02"

// Service owns the items table.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func validateFields(partNumber, itemName, reminderDate string) error {
	if strings.TrimSpace(partNumber) == "" || strings.TrimSpace(itemName) == "" {
		return fmt.Errorf("%w: part number and item name are required", apperr.ErrValidation)
	}
	if reminderDate != "" {
		if _, err := time.Parse(DateLayout, reminderDate); err != nil {
			return fmt.Errorf("%w: reminder date must use the YYYY-MM-DD format", apperr.ErrValidation)
		}
	}
	return nil
}

// Create inserts a new part. The acknowledged flag always starts false.
func (s *Service) Create(ctx context.Context, partNumber, itemName string, chapter int, reminderDate string) (*Part, error) {
	if err := validateFields(partNumber, itemName, reminderDate); err != nil {
		return nil, err
	}
	part := Part{
		PartNumber:   partNumber,
		ItemName:     itemName,
		Chapter:      chapter,
		ReminderDate: reminderDate,
	}
	if err := s.db.WithContext(ctx).Create(&part).Error; err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}
	return &part, nil
}

// List returns every part in insertion order.
func (s *Service) List(ctx context.Context) ([]Part, error) {
	var items []Part
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Part, error) {
	var part Part
	err := s.db.WithContext(ctx).First(&part, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get part %d: %w", id, err)
	}
	return &part, nil
}

// Update replaces every editable field of an existing part and clears the
// acknowledged flag, so a changed reminder date notifies again.
func (s *Service) Update(ctx context.Context, id uint, partNumber, itemName string, chapter int, reminderDate string) error {
	if err := validateFields(partNumber, itemName, reminderDate); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&Part{}).Where("id = ?", id).Updates(map[string]any{
		"part_number":               partNumber,
		"item_name":                 itemName,
		"chapter":                   chapter,
		"reminder_date":             reminderDate,
		"notification_acknowledged": false,
	})
	if res.Error != nil {
		return fmt.Errorf("update part %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes a part. Deleting an absent id is not an error.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&Part{}, id).Error; err != nil {
		return fmt.Errorf("delete part %d: %w", id, err)
	}
	return nil
}

// Search matches the query as a case-insensitive substring of either the
// part number or the item name. An empty query returns the full catalog.
func (s *Service) Search(ctx context.Context, query string) ([]Part, error) {
	if query == "" {
		return s.List(ctx)
	}
	pattern := "%" + strings.ToLower(query) + "%"
	var items []Part
	err := s.db.WithContext(ctx).
		Where("LOWER(part_number) LIKE ? OR LOWER(item_name) LIKE ?", pattern, pattern).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("search parts: %w", err)
	}
	return items, nil
}

// PendingNotifications scans unacknowledged parts with a reminder date and
// reports the ones due today or tomorrow relative to the given clock. Rows
// whose stored date does not parse are logged and skipped, never fatal.
func (s *Service) PendingNotifications(ctx context.Context, now time.Time) ([]Notification, error) {
	var items []Part
	err := s.db.WithContext(ctx).
		Where("reminder_date <> '' AND notification_acknowledged = ?", false).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("scan reminders: %w", err)
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var due []Notification
	for _, it := range items {
		rd, err := time.Parse(DateLayout, it.ReminderDate)
		if err != nil {
			log.Printf("[Parts] Skipping reminder for %q: bad date %q", it.ItemName, it.ReminderDate)
			continue
		}
		switch {
		case today.Equal(rd.AddDate(0, 0, -1)):
			due = append(due, Notification{
				ItemName: it.ItemName,
				Message:  fmt.Sprintf("Tomorrow is the reminder date for '%s'.", it.ItemName),
			})
		case today.Equal(rd):
			due = append(due, Notification{
				ItemName: it.ItemName,
				Message:  fmt.Sprintf("Today is the reminder date for '%s'.", it.ItemName),
			})
		}
	}
	return due, nil
}
