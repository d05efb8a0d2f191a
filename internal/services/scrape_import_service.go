package services

import (
	"context"

	"satta-board/internal/scraper"

	"github.com/sirupsen/logrus"
)

// ScrapeImportService pulls results from the configured external source and
// feeds them through the bulk-upload matcher for today's date.
type ScrapeImportService struct {
	scraper *scraper.Scraper
	bulk    *BulkUploadService
}

// NewScrapeImportService creates a ScrapeImportService.
func NewScrapeImportService(sc *scraper.Scraper, bulk *BulkUploadService) *ScrapeImportService {
	return &ScrapeImportService{scraper: sc, bulk: bulk}
}

// Run fetches the source page and applies every extracted result for today.
// Unmatched scraped games land in the report's per-row errors, like any
// other bulk upload.
func (s *ScrapeImportService) Run(ctx context.Context) (*BulkUploadReport, error) {
	scraped, err := s.scraper.FetchResults(ctx)
	if err != nil {
		return nil, err
	}

	today := s.bulk.games.Today().Format("02/01/2006")
	rows := make([]BulkUploadRow, 0, len(scraped))
	for _, item := range scraped {
		rows = append(rows, BulkUploadRow{
			Game:   item.GameName,
			Date:   today,
			Result: item.Result,
			Note:   "auto-sync",
		})
	}

	report, err := s.bulk.Process(rows)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"scraped": len(scraped),
		"applied": report.Applied,
		"errors":  len(report.Errors),
	}).Info("Auto-sync completed")
	return report, nil
}
