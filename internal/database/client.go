// Package database persists per-analysis summary records. Storage is
// optional; the analysis pipeline never depends on it.
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/google/uuid"
	"github.com/somnolab/apneawatch/internal/analysis"
	"github.com/somnolab/apneawatch/internal/log"
	"go.uber.org/zap"
)

// Client holds the connection to the analysis history database
type Client struct {
	DB     *gorm.DB
	logger *zap.SugaredLogger
}

// NewClient connects to the database and migrates the analyses table.
func NewClient(connectionString string, zlogger *zap.SugaredLogger) (*Client, error) {
	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("unable to connect to analysis database: %w", err)
	}

	if err := db.AutoMigrate(&AnalysisRecord{}); err != nil {
		return nil, fmt.Errorf("unable to migrate analyses table: %w", err)
	}

	return &Client{DB: db, logger: zlogger}, nil
}

// StoreAnalysis saves the summary of a completed analysis and returns the
// record ID. chart may be nil when there is no reduced signal to keep.
func (c *Client) StoreAnalysis(ctx context.Context, filename, format string, sampleCount int, result *analysis.Result, chart []analysis.ChartPoint) (string, error) {
	record := AnalysisRecord{
		ID:            uuid.New().String(),
		Filename:      filename,
		Format:        format,
		SampleCount:   sampleCount,
		EventCount:    result.ApneaCount,
		AHI:           result.AHI,
		Severity:      result.Severity,
		DurationHours: result.DurationHours,
	}

	chartJSON, err := json.Marshal(chart)
	if err != nil {
		return "", fmt.Errorf("unable to encode chart data: %w", err)
	}
	if err := record.ChartData.Set(chartJSON); err != nil {
		return "", fmt.Errorf("unable to set chart data: %w", err)
	}

	if err := c.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("unable to store analysis record: %w", err)
	}
	c.logger.Debugf("stored analysis %s (%d events, AHI %.2f)", record.ID, record.EventCount, record.AHI)
	return record.ID, nil
}

// RecentAnalyses returns the newest stored analyses, newest first.
func (c *Client) RecentAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	var records []AnalysisRecord
	err := c.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("unable to query analyses: %w", err)
	}
	return records, nil
}

// GetAnalysis fetches one stored analysis by ID along with its reduced
// signal curve.
func (c *Client) GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, []analysis.ChartPoint, error) {
	var record AnalysisRecord
	if err := c.DB.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, nil, err
	}

	var chart []analysis.ChartPoint
	if record.ChartData.Bytes != nil {
		if err := json.Unmarshal(record.ChartData.Bytes, &chart); err != nil {
			return nil, nil, fmt.Errorf("unable to decode chart data: %w", err)
		}
	}
	return &record, chart, nil
}
