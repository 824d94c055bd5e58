package model

// AnalyticsLog records one handled HTTP request for usage bookkeeping
type AnalyticsLog struct {
	BaseModel
	Method     string `gorm:"type:varchar(10)" json:"method"`
	Path       string `gorm:"type:varchar(255);index" json:"path"`
	StatusCode int    `json:"status_code"`
	DurationMs int64  `json:"duration_ms"`
	IP         string `gorm:"type:varchar(45)" json:"ip"`
}
