package restserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/somnolab/apneawatch/internal/analysis"
	"github.com/somnolab/apneawatch/internal/constants"
	"github.com/somnolab/apneawatch/internal/log"
	"github.com/somnolab/apneawatch/internal/signal"
	"gorm.io/gorm"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{controller: ctrl}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeFilename strips any path components and unsafe characters from an
// uploaded filename before it is echoed back or stored.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// clampSensitivity applies the documented sensitivity policy: out-of-range
// values are clamped into [0,1] at every entry point, never rejected.
func clampSensitivity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to write response: %v", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// Upload handles ECG file upload and processing
func (h *Handlers) Upload(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, MaxUploadBytes)
	if err := req.ParseMultipartForm(MaxUploadBytes); err != nil {
		h.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("File too large. Maximum size: %dMB", MaxUploadBytes/(1024*1024)))
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	format, err := signal.ParseFormat(ext)
	if err != nil {
		h.writeError(w, http.StatusBadRequest,
			"File type not supported. Allowed types: CSV, TXT, JSON, APN")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	sensitivity := h.controller.DefaultSensitivity
	if v := req.FormValue("sensitivity"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid sensitivity value")
			return
		}
		sensitivity = parsed
	}
	sensitivity = clampSensitivity(sensitivity)

	sequence, err := signal.Parse(data, format)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := h.controller.AnalysisConfig
	analyzer := analysis.NewAnalyzer(cfg, h.controller.NewPolicy())
	result, err := analyzer.Analyze(sequence, sensitivity)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to analyze ECG data: %v", err))
		return
	}

	chart := analysis.ReduceSignal(sequence, cfg.MaxChartPoints, cfg.SamplingRate)

	var recordID string
	if h.controller.DBEnabled {
		recordID, err = h.controller.DB.StoreAnalysis(req.Context(), filename, string(format), len(sequence), result, chart)
		if err != nil {
			// Storage failures never fail the analysis itself.
			log.Errorf("failed to store analysis: %v", err)
			recordID = ""
		}
	}

	h.writeJSON(w, http.StatusOK, UploadResponse{
		Success:        true,
		Filename:       filename,
		Analysis:       result,
		ECGData:        chart,
		RecordID:       recordID,
		ProcessingTime: time.Now().Format(time.RFC3339),
	})
}

// Analyze handles direct numeric analysis with custom parameters
func (h *Handlers) Analyze(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, MaxUploadBytes)

	var body AnalyzeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(body.ECGData) == 0 {
		h.writeError(w, http.StatusBadRequest, "ECG data not provided")
		return
	}

	sensitivity := h.controller.DefaultSensitivity
	if body.Sensitivity != nil {
		sensitivity = *body.Sensitivity
	}
	sensitivity = clampSensitivity(sensitivity)

	cfg := h.controller.AnalysisConfig
	analyzer := analysis.NewAnalyzer(cfg, h.controller.NewPolicy())
	result, err := analyzer.Analyze(body.ECGData, sensitivity)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to analyze ECG data: %v", err))
		return
	}

	var recordID string
	if h.controller.DBEnabled {
		recordID, err = h.controller.DB.StoreAnalysis(req.Context(), "", "raw", len(body.ECGData), result, nil)
		if err != nil {
			log.Errorf("failed to store analysis: %v", err)
			recordID = ""
		}
	}

	h.writeJSON(w, http.StatusOK, AnalyzeResponse{
		Success:        true,
		Analysis:       result,
		RecordID:       recordID,
		ProcessingTime: time.Now().Format(time.RFC3339),
	})
}

// Health reports service status and capabilities
func (h *Handlers) Health(w http.ResponseWriter, req *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:           "healthy",
		Service:          constants.ServiceName,
		Timestamp:        time.Now().Format(time.RFC3339),
		SupportedFormats: signal.SupportedFormats,
		MaxFileSizeMB:    MaxUploadBytes / (1024 * 1024),
	})
}

// RecentAnalyses lists stored analysis summaries, newest first
func (h *Handlers) RecentAnalyses(w http.ResponseWriter, req *http.Request) {
	if !h.controller.DBEnabled {
		h.writeError(w, http.StatusServiceUnavailable, "Analysis history storage is not configured")
		return
	}

	limit := 20
	if l := req.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > 500 {
			h.writeError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
		limit = parsed
	}

	records, err := h.controller.DB.RecentAnalyses(req.Context(), limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to retrieve analyses: %v", err))
		return
	}

	h.writeJSON(w, http.StatusOK, records)
}

// Chart renders a stored analysis's reduced signal as an HTML line chart
func (h *Handlers) Chart(w http.ResponseWriter, req *http.Request) {
	if !h.controller.DBEnabled {
		h.writeError(w, http.StatusServiceUnavailable, "Analysis history storage is not configured")
		return
	}

	id := mux.Vars(req)["id"]
	record, chart, err := h.controller.DB.GetAnalysis(req.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.writeError(w, http.StatusNotFound, "Analysis not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to retrieve analysis: %v", err))
		return
	}

	if err := renderSignalChart(w, record, chart); err != nil {
		log.Errorf("failed to render chart: %v", err)
	}
}
