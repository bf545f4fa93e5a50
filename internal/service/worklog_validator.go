package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"
)

// quantityNotApplicable is the literal a submitter types when a row has no
// meaningful quantity. It is stored as null.
const quantityNotApplicable = "N/A"

var requiredRowFields = []struct {
	label string
	pick  func(dto.WorkRow) string
}{
	{"model", func(r dto.WorkRow) string { return r.Model }},
	{"serialNumber", func(r dto.WorkRow) string { return r.SerialNumber }},
	{"workOrder", func(r dto.WorkRow) string { return r.WorkOrder }},
	{"partNumber", func(r dto.WorkRow) string { return r.PartNumber }},
	{"orderNumber", func(r dto.WorkRow) string { return r.OrderNumber }},
	{"unitName", func(r dto.WorkRow) string { return r.UnitName }},
	{"workType", func(r dto.WorkRow) string { return r.WorkType }},
	{"minutes", func(r dto.WorkRow) string { return r.Minutes }},
}

// ValidateWorkRows checks a submission batch and fails on the first bad row.
// Row indices in errors are 1-based, matching what the entry grid shows.
func ValidateWorkRows(rows []dto.WorkRow) error {
	if len(rows) == 0 {
		return apperrors.NewValidation("at least one work row is required")
	}
	for i, row := range rows {
		rowNum := i + 1
		for _, field := range requiredRowFields {
			if strings.TrimSpace(field.pick(row)) == "" {
				return apperrors.NewRowValidation(rowNum, fmt.Sprintf("%s is required", field.label))
			}
		}
		if _, err := ParseQuantity(row.Quantity); err != nil {
			return apperrors.NewRowValidation(rowNum, err.Error())
		}
		if _, err := ParseMinutes(row.Minutes); err != nil {
			return apperrors.NewRowValidation(rowNum, err.Error())
		}
	}
	return nil
}

// ParseQuantity converts the raw quantity cell. "N/A" (and blank) mean not
// applicable and yield nil; anything else must be a non-negative integer.
func ParseQuantity(raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == quantityNotApplicable {
		return nil, nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, fmt.Errorf("quantity must be a number or %q", quantityNotApplicable)
	}
	if value < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}
	return &value, nil
}

// ParseMinutes converts the raw minutes cell; it must be a positive integer.
func ParseMinutes(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("minutes must be a number")
	}
	if value <= 0 {
		return 0, fmt.Errorf("minutes must be greater than zero")
	}
	return value, nil
}

// ValidateReason rejects blank edit or rejection reasons.
func ValidateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.NewValidation("reason must not be empty")
	}
	return nil
}
