package service

import (
	"testing"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow() dto.WorkRow {
	return dto.WorkRow{
		Id:           1,
		Model:        "MX-100",
		SerialNumber: "SN-1",
		WorkOrder:    "WO-1",
		PartNumber:   "PN-1",
		OrderNumber:  "ON-1",
		Quantity:     "5",
		UnitName:     "Unit A",
		WorkType:     "Assembly",
		Minutes:      "30",
	}
}

func TestValidateWorkRows(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.WorkRow)
		wantErr string
	}{
		{name: "valid row", mutate: func(r *dto.WorkRow) {}},
		{name: "missing model", mutate: func(r *dto.WorkRow) { r.Model = "" }, wantErr: "model is required"},
		{name: "whitespace serial", mutate: func(r *dto.WorkRow) { r.SerialNumber = "   " }, wantErr: "serialNumber is required"},
		{name: "missing unit", mutate: func(r *dto.WorkRow) { r.UnitName = "" }, wantErr: "unitName is required"},
		{name: "bad quantity", mutate: func(r *dto.WorkRow) { r.Quantity = "abc" }, wantErr: "quantity must be a number"},
		{name: "negative quantity", mutate: func(r *dto.WorkRow) { r.Quantity = "-3" }, wantErr: "quantity must not be negative"},
		{name: "zero minutes", mutate: func(r *dto.WorkRow) { r.Minutes = "0" }, wantErr: "minutes must be greater than zero"},
		{name: "non numeric minutes", mutate: func(r *dto.WorkRow) { r.Minutes = "half an hour" }, wantErr: "minutes must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.mutate(&row)
			err := ValidateWorkRows([]dto.WorkRow{row})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateWorkRowsReportsRowNumber(t *testing.T) {
	bad := validRow()
	bad.Model = ""

	err := ValidateWorkRows([]dto.WorkRow{validRow(), bad})
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 2, validationErr.Row)
}

func TestValidateWorkRowsEmptyBatch(t *testing.T) {
	err := ValidateWorkRows(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one work row")
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw     string
		want    *int
		wantErr bool
	}{
		{raw: "5", want: intptr(5)},
		{raw: "0", want: intptr(0)},
		{raw: "N/A", want: nil},
		{raw: "", want: nil},
		{raw: "  7 ", want: intptr(7)},
		{raw: "-1", wantErr: true},
		{raw: "many", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseQuantity(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMinutes(t *testing.T) {
	got, err := ParseMinutes("45")
	require.NoError(t, err)
	assert.Equal(t, 45, got)

	_, err = ParseMinutes("0")
	assert.Error(t, err)

	_, err = ParseMinutes("-10")
	assert.Error(t, err)

	_, err = ParseMinutes("")
	assert.Error(t, err)
}

func intptr(v int) *int { return &v }
