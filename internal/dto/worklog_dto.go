package dto

// WorkRow is one submitted line of a daily entry sheet. Numeric fields arrive
// as strings because the entry grid sends raw cell text; quantity "N/A" means
// not applicable and is stored as null.
type WorkRow struct {
	Id           int    `json:"id"`
	Model        string `json:"model"`
	SerialNumber string `json:"serialNumber"`
	WorkOrder    string `json:"workOrder"`
	PartNumber   string `json:"partNumber"`
	OrderNumber  string `json:"orderNumber"`
	Quantity     string `json:"quantity"`
	UnitName     string `json:"unitName"`
	WorkType     string `json:"workType"`
	Minutes      string `json:"minutes"`
	Remarks      string `json:"remarks"`
}

type SaveWorklogRequest struct {
	WorkDate string    `json:"workDate" validate:"required"`
	WorkRows []WorkRow `json:"workRows" validate:"required"`
}

type SaveWorklogResponse struct {
	Message   string `json:"message"`
	Date      string `json:"date"`
	UpdatedAt string `json:"updated_at"`
}

type DailyWorkRow struct {
	Id           int    `json:"id"`
	Model        string `json:"model"`
	SerialNumber string `json:"serialNumber"`
	WorkOrder    string `json:"workOrder"`
	PartNumber   string `json:"partNumber"`
	OrderNumber  string `json:"orderNumber"`
	Quantity     string `json:"quantity"`
	UnitName     string `json:"unitName"`
	WorkType     string `json:"workType"`
	Minutes      string `json:"minutes"`
	Remarks      string `json:"remarks"`
	Status       string `json:"status"`
}

type DailyWorklogResponse struct {
	WorkDate  string         `json:"workDate"`
	WorkRows  []DailyWorkRow `json:"workRows"`
	UpdatedAt *string        `json:"updatedAt"`
}
