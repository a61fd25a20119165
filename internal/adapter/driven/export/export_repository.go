package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/repository"
	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/sku"
)

// ExportRepositoryImpl implements the ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new ExportRepository implementation.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// valueHeader names the value column after the active mode.
func valueHeader(mode entity.ValueMode) string {
	if mode == entity.ModeCost {
		return "Cost (USD)"
	}
	return "Minutes"
}

// ExportToCSV writes the filtered usage view to a CSV file and returns the
// absolute path of the written file.
func (r *ExportRepositoryImpl) ExportToCSV(lines []entity.ValuedLine, mode entity.ValueMode, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Date", "Product", "SKU", "SKU Label", "Quantity", "Unit Type",
		"Price Per Unit", "Net Amount", "Username", "Organization",
		"Repository", "Workflow", "Cost Center", valueHeader(mode),
	}
	writer.Write(headers)

	for _, l := range lines {
		record := []string{
			l.Date.Format("2006-01-02"),
			l.Product,
			l.SKU,
			cleanRichTags(sku.Format(l.SKU)),
			strconv.FormatFloat(l.Quantity, 'f', -1, 64),
			l.UnitType,
			strconv.FormatFloat(l.PricePerUnit, 'f', -1, 64),
			strconv.FormatFloat(l.NetAmount, 'f', -1, 64),
			l.Username,
			l.Organization,
			l.RepositoryName,
			l.Workflow(),
			l.CostCenterName,
			strconv.FormatFloat(l.Value, 'f', -1, 64),
		}
		writer.Write(record)
	}

	return filepath.Abs(outputFilename)
}

// ExportToJSON writes the filtered usage view to an indented JSON file.
func (r *ExportRepositoryImpl) ExportToJSON(lines []entity.ValuedLine, mode entity.ValueMode, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	payload := struct {
		ValueMode entity.ValueMode    `json:"value_mode"`
		Lines     []entity.ValuedLine `json:"lines"`
	}{ValueMode: mode, Lines: lines}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF writes the filtered usage view to a simple tabular PDF.
func (r *ExportRepositoryImpl) ExportToPDF(lines []entity.ValuedLine, mode entity.ValueMode, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  GitHub Usage Report"), "", 1, "L", true, 0, "")
	pdf.Ln(4)

	colWidths := []float64{24, 24, 44, 22, 30, 46, 60, 26}
	headers := []string{"Date", "Product", "SKU", "Qty", "Org", "Repository", "Workflow", valueHeader(mode)}

	writeHeaderRow := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(220, 220, 220)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for i, h := range headers {
			pdf.CellFormat(colWidths[i], 7, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeaderRow()

	pdf.SetFont("Arial", "", 8)
	for _, l := range lines {
		if pdf.GetY() > 185 {
			pdf.AddPage()
			writeHeaderRow()
			pdf.SetFont("Arial", "", 8)
		}
		cells := []string{
			l.Date.Format("2006-01-02"),
			l.Product,
			sku.Format(l.SKU),
			fmt.Sprintf("%.2f", l.Quantity),
			l.Organization,
			l.RepositoryName,
			l.Workflow(),
			fmt.Sprintf("%.4f", l.Value),
		}
		for i, c := range cells {
			pdf.CellFormat(colWidths[i], 6, tr(truncate(c, 40)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regexes to scrub pterm rich tags and ANSI color/style sequences from
// strings that may have passed through console formatting.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags removes pterm formatting tags and ANSI sequences.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
