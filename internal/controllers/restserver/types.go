package restserver

import "github.com/somnolab/apneawatch/internal/analysis"

// AnalyzeRequest is the body of POST /api/analyze. Sensitivity is a pointer
// so an omitted field falls back to the configured default rather than 0.
type AnalyzeRequest struct {
	ECGData     []float64 `json:"ecg_data"`
	Sensitivity *float64  `json:"sensitivity,omitempty"`
}

// UploadResponse is the body of a successful POST /api/upload.
type UploadResponse struct {
	Success        bool                  `json:"success"`
	Filename       string                `json:"filename"`
	Analysis       *analysis.Result      `json:"analysis"`
	ECGData        []analysis.ChartPoint `json:"ecg_data"`
	RecordID       string                `json:"record_id,omitempty"`
	ProcessingTime string                `json:"processing_time"`
}

// AnalyzeResponse is the body of a successful POST /api/analyze.
type AnalyzeResponse struct {
	Success        bool             `json:"success"`
	Analysis       *analysis.Result `json:"analysis"`
	RecordID       string           `json:"record_id,omitempty"`
	ProcessingTime string           `json:"processing_time"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status           string   `json:"status"`
	Service          string   `json:"service"`
	Timestamp        string   `json:"timestamp"`
	SupportedFormats []string `json:"supported_formats"`
	MaxFileSizeMB    int      `json:"max_file_size_mb"`
}
