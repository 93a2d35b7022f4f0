package dto

// CreateDailyLogRequest is the body for both POST and PUT on /logs/daily.
type CreateDailyLogRequest struct {
	LogDate string `json:"log_date" binding:"required,datetime=2006-01-02"`
	RawText string `json:"raw_text" binding:"required,min=10"`
}

// UpdateDailyLogRequest carries only the raw text; the date comes from the path.
type UpdateDailyLogRequest struct {
	RawText string `json:"raw_text" binding:"required,min=10"`
}
