package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/invento/backend/internal/domain/inventory"
	"github.com/invento/backend/internal/domain/report"
	"github.com/invento/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const (
	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxSheetName   = "Sheet1"

	// Timestamps in exports are written timezone-naive; spreadsheets cannot
	// represent offsets.
	exportTimestampLayout = "2006-01-02 15:04:05"
	exportDateLayout      = "2006-01-02"
	filenameStampLayout   = "20060102_150405"
)

// reportColumns are the export column headers, in output order
var reportColumns = []string{
	"Name", "SKU", "Category", "Quantity", "Unit Price",
	"Supplier", "Reorder Level", "Expiry Date", "Created At",
}

// ExportFile is a generated report ready to stream to the client
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService generates filtered inventory exports and summaries
type ReportService struct {
	repo   inventory.ItemRepository
	logger *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(repo inventory.ItemRepository, logger *zap.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger}
}

// ParseQuery builds a report query from raw query parameters. Dates must be
// YYYY-MM-DD; an unknown status is ignored rather than rejected, matching the
// permissive filter contract.
func ParseQuery(startDate, endDate, status string) (inventory.ReportQuery, error) {
	var query inventory.ReportQuery

	if startDate != "" {
		parsed, err := time.Parse(exportDateLayout, startDate)
		if err != nil {
			return query, shared.NewDomainError("INVALID_DATE", "Invalid date format.")
		}
		query.StartDate = &parsed
	}
	if endDate != "" {
		parsed, err := time.Parse(exportDateLayout, endDate)
		if err != nil {
			return query, shared.NewDomainError("INVALID_DATE", "Invalid date format.")
		}
		query.EndDate = &parsed
	}

	switch status {
	case inventory.StatusFilterInStock, inventory.StatusFilterLowStock, inventory.StatusFilterExpired:
		query.Status = status
	}

	return query, nil
}

// Download serializes the filtered record set to the requested format. Any
// format other than csv or xlsx is rejected. An empty record set still
// produces a valid file with only the header row.
func (s *ReportService) Download(ctx context.Context, format string, query inventory.ReportQuery) (*ExportFile, error) {
	format = strings.ToLower(format)
	if format != FormatCSV && format != FormatXLSX {
		return nil, shared.NewDomainError("INVALID_EXPORT_FORMAT",
			fmt.Sprintf("Invalid format: %s. Use csv or xlsx.", format))
	}

	items, err := s.repo.FindForReport(ctx, query)
	if err != nil {
		return nil, err
	}

	var data []byte
	var contentType string
	switch format {
	case FormatXLSX:
		data, err = writeXLSX(items)
		contentType = xlsxContentType
	default:
		data, err = writeCSV(items)
		contentType = csvContentType
	}
	if err != nil {
		s.logger.Error("report export failed", zap.String("format", format), zap.Error(err))
		return nil, shared.NewDomainError("EXPORT_FAILED", "Report export failed")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("inventory_report_%s.%s", time.Now().Format(filenameStampLayout), format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Summary computes the filtered aggregate statistics and echoes the applied
// filters back to the caller
func (s *ReportService) Summary(ctx context.Context, query inventory.ReportQuery) (*report.Summary, error) {
	items, err := s.repo.FindForReport(ctx, query)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	summary := &report.Summary{
		TotalItems: int64(len(items)),
		TotalValue: decimal.Zero,
		Filters:    appliedFilters(query),
	}
	for i := range items {
		item := &items[i]
		summary.TotalValue = summary.TotalValue.Add(item.StockValue())
		if item.IsLowStock() {
			summary.LowStockCount++
		}
		if item.IsExpired(today) {
			summary.ExpiredCount++
		}
	}

	return summary, nil
}

func appliedFilters(query inventory.ReportQuery) report.AppliedFilters {
	filters := report.AppliedFilters{Status: query.Status}
	if query.StartDate != nil {
		filters.StartDate = query.StartDate.Format(exportDateLayout)
	}
	if query.EndDate != nil {
		filters.EndDate = query.EndDate.Format(exportDateLayout)
	}
	return filters
}

func itemRow(item *inventory.Item) []string {
	expiry := ""
	if item.ExpiryDate != nil {
		expiry = item.ExpiryDate.Format(exportDateLayout)
	}
	return []string{
		item.Name,
		item.SKU,
		item.Category,
		strconv.Itoa(item.Quantity),
		item.UnitPrice.StringFixed(2),
		item.Supplier,
		strconv.Itoa(item.ReorderLevel),
		expiry,
		item.CreatedAt.UTC().Format(exportTimestampLayout),
	}
}

func writeCSV(items []inventory.Item) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(reportColumns); err != nil {
		return nil, err
	}
	for i := range items {
		if err := writer.Write(itemRow(&items[i])); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSX(items []inventory.Item) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	header := make([]any, len(reportColumns))
	for i, column := range reportColumns {
		header[i] = column
	}
	if err := file.SetSheetRow(xlsxSheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i := range items {
		item := &items[i]
		row := []any{
			item.Name,
			item.SKU,
			item.Category,
			item.Quantity,
			item.UnitPrice.InexactFloat64(),
			item.Supplier,
			item.ReorderLevel,
		}
		if item.ExpiryDate != nil {
			row = append(row, item.ExpiryDate.Format(exportDateLayout))
		} else {
			row = append(row, "")
		}
		row = append(row, item.CreatedAt.UTC().Format(exportTimestampLayout))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := file.SetSheetRow(xlsxSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
