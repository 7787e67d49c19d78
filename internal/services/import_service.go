package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"stockroom/internal/caching"
	"stockroom/internal/domain"
	"stockroom/internal/models"
	"stockroom/internal/repositories"

	"github.com/xuri/excelize/v2"
)

var requiredImportColumns = []string{"name", "description", "stock", "low_stock_threshold"}

const (
	// lastImportKey holds the most recent import result; admins can fetch
	// it without re-running the import.
	lastImportKey = "stockroom:import:last"
	// archiveURLTTL bounds the presigned archive link and the cached
	// result that carries it.
	archiveURLTTL = 24 * time.Hour
)

// ImportService loads inventory rows from an uploaded xlsx workbook. Rows are
// applied independently: a bad row is reported and skipped without rolling
// back rows that already imported.
type ImportService interface {
	ImportItems(ctx context.Context, caller *models.User, filename string, file io.Reader) (*models.ImportResult, error)
	LastResult(ctx context.Context, caller *models.User) (*models.ImportResult, error)
}

type importService struct {
	itemRepo     repositories.ItemRepository
	transactor   *repositories.Transactor
	cacheService caching.CacheService
	archive      ArchiveService
	txLog        TransactionLogService
}

func NewImportService(itemRepo repositories.ItemRepository, transactor *repositories.Transactor, cacheService caching.CacheService, archive ArchiveService, txLog TransactionLogService) ImportService {
	return &importService{
		itemRepo:     itemRepo,
		transactor:   transactor,
		cacheService: cacheService,
		archive:      archive,
		txLog:        txLog,
	}
}

func (s *importService) ImportItems(ctx context.Context, caller *models.User, filename string, file io.Reader) (*models.ImportResult, error) {
	if caller.Role != models.RoleAdmin {
		return nil, domain.Forbidden("only admins can import inventory")
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return nil, domain.InvalidInput("only .xlsx files are supported, got %q", filename)
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, domain.InvalidInput("failed to read upload: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.InvalidInput("failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.InvalidInput("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, domain.InvalidInput("failed to read sheet %q: %v", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, domain.InvalidInput("sheet %q is empty", sheets[0])
	}

	columns, err := mapImportColumns(rows[0])
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		Status:    "completed",
		TotalRows: len(rows) - 1,
		StartTime: time.Now(),
	}

	for i, row := range rows[1:] {
		rowNumber := i + 2 // 1-based, row 1 is the header
		item, err := parseImportRow(row, columns)
		if err != nil {
			result.FailedRows++
			result.Errors = append(result.Errors, models.ImportError{RowNumber: rowNumber, Error: err.Error()})
			continue
		}

		err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
			return s.itemRepo.UpsertByNameAndDescription(ctx, item)
		})
		if err != nil {
			result.FailedRows++
			result.Errors = append(result.Errors, models.ImportError{RowNumber: rowNumber, Error: err.Error()})
			continue
		}
		result.ImportedRows++
	}

	if err := s.cacheService.DeletePattern(ctx, "stockroom:item:*"); err != nil {
		log.Printf("Failed to invalidate item cache after import: %v", err)
	}

	result.CompletionTime = time.Now()
	if result.FailedRows > 0 {
		result.Status = "completed_with_errors"
	}

	// Archive the original upload for auditing; losing the archive does not
	// fail the import, it just leaves the result without a download link.
	if objectName, archiveErr := s.archive.Store(ctx, filename, raw); archiveErr != nil {
		log.Printf("Failed to archive import file %s: %v", filename, archiveErr)
	} else if url, urlErr := s.archive.GetPresignedURL(ctx, objectName, archiveURLTTL); urlErr != nil {
		log.Printf("Failed to presign archive %s: %v", objectName, urlErr)
	} else {
		result.ArchiveURL = url
	}

	if data, marshalErr := json.Marshal(result); marshalErr == nil {
		if cacheErr := s.cacheService.SetString(ctx, lastImportKey, string(data), archiveURLTTL); cacheErr != nil {
			log.Printf("Failed to cache import result: %v", cacheErr)
		}
	}

	s.txLog.Record(ctx, caller.ID, models.ActionImportItems, fmt.Sprintf("imported %d/%d rows from %s", result.ImportedRows, result.TotalRows, filename))

	return result, nil
}

// LastResult returns the most recent import result, kept in the cache for as
// long as its archive link stays valid.
func (s *importService) LastResult(ctx context.Context, caller *models.User) (*models.ImportResult, error) {
	if caller.Role != models.RoleAdmin {
		return nil, domain.Forbidden("only admins can view import results")
	}

	data, err := s.cacheService.GetString(ctx, lastImportKey)
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, domain.NotFound("no recent import")
	}

	result := &models.ImportResult{}
	if err := json.Unmarshal([]byte(data), result); err != nil {
		return nil, err
	}
	return result, nil
}

// mapImportColumns resolves header cells to column indexes. Headers are
// matched case-insensitively with spaces treated as underscores.
func mapImportColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, cell := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "_")
		if key != "" {
			columns[key] = i
		}
	}

	var missing []string
	for _, required := range requiredImportColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, domain.InvalidInput("missing required columns: %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

func parseImportRow(row []string, columns map[string]int) (*models.ItemRow, error) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	name := cell("name")
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	stock, err := strconv.Atoi(cell("stock"))
	if err != nil {
		return nil, fmt.Errorf("invalid stock %q", cell("stock"))
	}
	if stock < 0 {
		return nil, fmt.Errorf("stock must be non-negative, got %d", stock)
	}

	threshold := models.DefaultLowStockThreshold
	if raw := cell("low_stock_threshold"); raw != "" {
		threshold, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid low_stock_threshold %q", raw)
		}
		if threshold < 0 {
			return nil, fmt.Errorf("low_stock_threshold must be non-negative, got %d", threshold)
		}
	}

	return &models.ItemRow{
		Name:              name,
		Description:       cell("description"),
		Stock:             stock,
		LowStockThreshold: threshold,
	}, nil
}
