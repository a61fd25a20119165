package repository

import (
	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
)

// ExportRepository defines the interface for writing the filtered usage view
// to report files.
type ExportRepository interface {
	ExportToCSV(lines []entity.ValuedLine, mode entity.ValueMode, filename string, outputDir string) (string, error)
	ExportToJSON(lines []entity.ValuedLine, mode entity.ValueMode, filename string, outputDir string) (string, error)
	ExportToPDF(lines []entity.ValuedLine, mode entity.ValueMode, filename string, outputDir string) (string, error)
}
