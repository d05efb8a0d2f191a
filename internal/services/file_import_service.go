package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/models"
	"satta-board/internal/utils"

	"gorm.io/gorm"
)

// csvHeader is the required column order of import sheets and of the
// downloadable template.
var csvHeader = []string{"date", "game_name", "result"}

// FileImportService imports results from an uploaded CSV sheet. Unlike the
// bulk upload path, the sheet is all-or-nothing: the first bad row rejects
// the whole file before anything is written.
type FileImportService struct {
	db   *gorm.DB
	bulk *BulkUploadService
}

// NewFileImportService creates a FileImportService.
func NewFileImportService(db *gorm.DB, bulk *BulkUploadService) *FileImportService {
	return &FileImportService{db: db, bulk: bulk}
}

// importRow is one validated sheet row.
type importRow struct {
	date     time.Time
	gameName string
	result   int
}

// Import parses and applies a CSV sheet. Any invalid row, including one
// naming an unknown game, aborts the import with a row-numbered error.
func (s *FileImportService) Import(r io.Reader) (*BulkUploadReport, error) {
	rows, err := s.parse(r)
	if err != nil {
		return nil, err
	}

	matcher, err := s.bulk.buildMatcher()
	if err != nil {
		return nil, err
	}
	// Validate every game reference before the first write
	for i, row := range rows {
		if matcher.match(row.gameName) == nil {
			return nil, app_errors.NewValidationError(fmt.Sprintf("row %d: no game matches %q", i+2, row.gameName))
		}
	}

	today := s.bulk.games.Today()
	report := &BulkUploadReport{Total: len(rows)}
	for _, row := range rows {
		game := matcher.match(row.gameName)
		upload := BulkUploadRow{
			Game:   game.Name,
			Date:   row.date.Format("02/01/2006"),
			Result: row.result,
		}
		if err := s.bulk.applyRow(matcher, upload, today); err != nil {
			return report, app_errors.NewAPIError(app_errors.ErrDatabase, err.Error())
		}
		report.Applied++
	}
	return report, nil
}

// parse reads and validates the whole sheet. Row numbers in errors are
// 1-based and include the header line.
func (s *FileImportService) parse(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, app_errors.NewValidationError("empty or unreadable CSV file")
	}
	if !matchesHeader(header) {
		return nil, app_errors.NewValidationError(fmt.Sprintf("CSV header must be %q", strings.Join(csvHeader, ",")))
	}

	var rows []importRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, app_errors.NewValidationError(fmt.Sprintf("row %d: %v", line, err))
		}
		if len(record) < 3 {
			return nil, app_errors.NewValidationError(fmt.Sprintf("row %d: expected 3 columns", line))
		}

		date, err := utils.ParseResultDate(record[0])
		if err != nil {
			return nil, app_errors.NewValidationError(fmt.Sprintf("row %d: %v", line, err))
		}
		name := strings.TrimSpace(record[1])
		if name == "" {
			return nil, app_errors.NewValidationError(fmt.Sprintf("row %d: game name is empty", line))
		}
		result, err := utils.ParseResult(record[2])
		if err != nil {
			return nil, app_errors.NewValidationError(fmt.Sprintf("row %d: %v", line, err))
		}

		rows = append(rows, importRow{date: date, gameName: name, result: result})
	}

	if len(rows) == 0 {
		return nil, app_errors.NewValidationError("CSV file contains no data rows")
	}
	return rows, nil
}

// matchesHeader checks the header line, case-insensitively.
func matchesHeader(header []string) bool {
	if len(header) < len(csvHeader) {
		return false
	}
	for i, want := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return false
		}
	}
	return true
}

// Template renders a downloadable sheet in the expected shape, seeded with
// the current games.
func (s *FileImportService) Template() ([]byte, error) {
	var games []models.Game
	if err := s.db.Where("enabled = ?", true).Order("scheduled_time asc").Limit(5).Find(&games).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, err.Error())
	}
	date := time.Now().Format("02/01/2006")
	if len(games) == 0 {
		if err := w.Write([]string{date, "Example Game", "45"}); err != nil {
			return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, err.Error())
		}
	}
	for _, game := range games {
		if err := w.Write([]string{date, game.Name, "45"}); err != nil {
			return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, err.Error())
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, err.Error())
	}
	return buf.Bytes(), nil
}
