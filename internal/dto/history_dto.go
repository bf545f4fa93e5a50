package dto

import "github.com/google/uuid"

// HistoryRow is a lifecycle row as rendered in the history table. A pending
// edit appears twice, the original plus a row whose OriginalId points back at
// it.
type HistoryRow struct {
	Id           uuid.UUID  `json:"id"`
	Date         string     `json:"date"`
	Model        string     `json:"model"`
	SerialNumber string     `json:"serialNumber"`
	WorkOrder    string     `json:"workOrder"`
	PartNumber   string     `json:"partNumber"`
	OrderNumber  string     `json:"orderNumber"`
	Quantity     string     `json:"quantity"`
	UnitName     string     `json:"unitName"`
	WorkType     string     `json:"workType"`
	Minutes      string     `json:"minutes"`
	Remarks      string     `json:"remarks"`
	Status       string     `json:"status"`
	EditReason   string     `json:"editReason"`
	OriginalId   *uuid.UUID `json:"originalId"`
	UpdatedAt    *string    `json:"updatedAt"`
}

type Pagination struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	HasPrev     bool  `json:"has_prev"`
	HasNext     bool  `json:"has_next"`
}

type HistoryQuery struct {
	StartDate string
	EndDate   string
	Model     string
	WorkType  string
	UnitName  string
	Status    string
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
}

type HistoryResponse struct {
	WorkRows   []HistoryRow `json:"workRows"`
	UpdatedAt  *string      `json:"updatedAt"`
	Pagination *Pagination  `json:"pagination,omitempty"`
}

type FilterOptionsResponse struct {
	Models    []string `json:"models"`
	WorkTypes []string `json:"workTypes"`
}

type AddWorklogRequest struct {
	Date         string `json:"date" validate:"required"`
	Model        string `json:"model"`
	SerialNumber string `json:"serialNumber"`
	WorkOrder    string `json:"workOrder"`
	PartNumber   string `json:"partNumber"`
	OrderNumber  string `json:"orderNumber"`
	Quantity     string `json:"quantity"`
	UnitName     string `json:"unitName" validate:"required"`
	WorkType     string `json:"workType" validate:"required"`
	Minutes      string `json:"minutes" validate:"required"`
	Remarks      string `json:"remarks"`
	EditReason   string `json:"editReason" validate:"required"`
}

type EditWorklogRequest struct {
	Id           uuid.UUID `json:"id" validate:"required"`
	Date         string    `json:"date" validate:"required"`
	Model        string    `json:"model"`
	SerialNumber string    `json:"serialNumber"`
	WorkOrder    string    `json:"workOrder"`
	PartNumber   string    `json:"partNumber"`
	OrderNumber  string    `json:"orderNumber"`
	Quantity     string    `json:"quantity"`
	UnitName     string    `json:"unitName" validate:"required"`
	WorkType     string    `json:"workType" validate:"required"`
	Minutes      string    `json:"minutes" validate:"required"`
	Remarks      string    `json:"remarks"`
	EditReason   string    `json:"editReason" validate:"required"`
}

type DeleteWorklogRequest struct {
	Id         uuid.UUID `json:"id" validate:"required"`
	EditReason string    `json:"editReason" validate:"required"`
}

type CancelWorklogRequest struct {
	Id         uuid.UUID  `json:"id" validate:"required"`
	OriginalId *uuid.UUID `json:"originalId"`
	Status     string     `json:"status" validate:"required"`
}

type CancelRejectedRequest struct {
	Id uuid.UUID `json:"id" validate:"required"`
}

type ResubmitWorklogRequest struct {
	Id             uuid.UUID `json:"id" validate:"required"`
	OriginalStatus string    `json:"originalStatus"`
	Date           string    `json:"date" validate:"required"`
	Model          string    `json:"model"`
	SerialNumber   string    `json:"serialNumber"`
	WorkOrder      string    `json:"workOrder"`
	PartNumber     string    `json:"partNumber"`
	OrderNumber    string    `json:"orderNumber"`
	Quantity       string    `json:"quantity"`
	UnitName       string    `json:"unitName" validate:"required"`
	WorkType       string    `json:"workType" validate:"required"`
	Minutes        string    `json:"minutes" validate:"required"`
	Remarks        string    `json:"remarks"`
	EditReason     string    `json:"editReason" validate:"required"`
}
