package storage

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/stmdev/steam-game-scraper/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// TableStore persists game records to an Excel workbook with append
// semantics: existing rows are kept and new rows are concatenated after them
// on every flush.
type TableStore struct {
	filename string
	logger   *slog.Logger
}

func NewTableStore(filename string, logger *slog.Logger) *TableStore {
	return &TableStore{
		filename: filename,
		logger:   logger,
	}
}

// ExistingNames reads the game_name column of the output file so already
// recorded games can be skipped. A missing file means an empty set; an
// unreadable one is logged and treated the same, the run then re-scrapes.
func (s *TableStore) ExistingNames() map[string]struct{} {
	names := make(map[string]struct{})

	if _, err := os.Stat(s.filename); os.IsNotExist(err) {
		return names
	}

	f, err := excelize.OpenFile(s.filename)
	if err != nil {
		s.logger.Warn("could not read existing output file", "file", s.filename, "error", err)
		return names
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		s.logger.Warn("could not read output sheet", "file", s.filename, "error", err)
		return names
	}

	// First row is the header.
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if name := strings.TrimSpace(row[0]); name != "" {
			names[name] = struct{}{}
		}
	}

	s.logger.Info("loaded existing games", "count", len(names), "file", s.filename)
	return names
}

// Append writes records after any rows already in the file. The workbook is
// saved to a temp file first and renamed into place so an interrupted save
// never truncates prior results.
func (s *TableStore) Append(records []*models.GameRecord) error {
	if len(records) == 0 {
		return nil
	}

	f, nextRow, err := s.openForAppend()
	if err != nil {
		return err
	}
	defer f.Close()

	for i, record := range records {
		for col, cell := range record.Row() {
			addr, err := excelize.CoordinatesToCellName(col+1, nextRow+i)
			if err != nil {
				return fmt.Errorf("failed to compute cell address: %w", err)
			}
			if err := f.SetCellValue(sheetName, addr, cell); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", addr, err)
			}
		}
	}

	tmpFile := s.filename + ".tmp.xlsx"
	if err := f.SaveAs(tmpFile); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	if err := os.Rename(tmpFile, s.filename); err != nil {
		return fmt.Errorf("failed to replace output file: %w", err)
	}

	s.logger.Info("appended records", "count", len(records), "file", s.filename)
	return nil
}

// openForAppend opens the existing workbook, or creates one with the header
// row, and returns the 1-based row index where new records start.
func (s *TableStore) openForAppend() (*excelize.File, int, error) {
	if _, err := os.Stat(s.filename); os.IsNotExist(err) {
		f := excelize.NewFile()
		for col, name := range models.Columns() {
			addr, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to compute header address: %w", err)
			}
			if err := f.SetCellValue(sheetName, addr, name); err != nil {
				return nil, 0, fmt.Errorf("failed to write header: %w", err)
			}
		}
		return f, 2, nil
	}

	f, err := excelize.OpenFile(s.filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open output file: %w", err)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to read output sheet: %w", err)
	}
	return f, len(rows) + 1, nil
}
