package database

import (
	"time"

	"github.com/jackc/pgtype"
)

// AnalysisRecord is the stored summary of one completed analysis. The raw
// signal is never persisted; only the aggregate numbers and the reduced
// visualization curve needed to re-render the chart.
type AnalysisRecord struct {
	ID            string       `gorm:"primaryKey;type:uuid" json:"id"`
	Filename      string       `json:"filename"`
	Format        string       `json:"format"`
	SampleCount   int          `json:"sample_count"`
	EventCount    int          `json:"event_count"`
	AHI           float64      `json:"ahi"`
	Severity      string       `json:"severity"`
	DurationHours float64      `json:"duration_hours"`
	ChartData     pgtype.JSONB `gorm:"type:jsonb;default:'[]';not null" json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
}

// TableName implements the GORM Tabler interface to specify the correct table name
func (AnalysisRecord) TableName() string {
	return "analyses"
}
