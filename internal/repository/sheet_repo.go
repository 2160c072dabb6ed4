package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/parisxmas/sitesurvey/internal/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SheetRepo stores survey responses in the first sheet of an xlsx workbook:
// one header row, then one row per response in insertion order.
//
// Every append rewrites the whole workbook. The new file is written next to
// the old one and renamed over it, and appends within one process are
// serialised. Separate processes sharing the file can still lose updates.
type SheetRepo struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewSheetRepo(path string, log *zap.Logger) *SheetRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &SheetRepo{path: path, log: log.Named("store")}
}

func (r *SheetRepo) Path() string {
	return r.path
}

// EnsureExists creates the workbook with only the header row when the file is
// absent. An existing file is left untouched.
func (r *SheetRepo) EnsureExists(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &WriteError{Path: r.path, Err: err}
	}
	if err := r.write(models.EmptyTable()); err != nil {
		return &WriteError{Path: r.path, Err: err}
	}
	r.log.Info("created store", zap.String("path", r.path))
	return nil
}

// Read parses the workbook. Failures are reported as *ReadError.
func (r *SheetRepo) Read(ctx context.Context) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(r.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ReadError{Path: r.path, Kind: ErrStoreMissing, Err: err}
		}
		return nil, &ReadError{Path: r.path, Kind: ErrStoreCorrupt, Err: err}
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, &ReadError{Path: r.path, Kind: ErrStoreCorrupt, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ReadError{Path: r.path, Kind: ErrStoreCorrupt, Err: errors.New("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ReadError{Path: r.path, Kind: ErrStoreCorrupt, Err: err}
	}
	return tableFromRows(rows), nil
}

// Load is Read with the fallback applied: a missing or unreadable workbook
// yields the empty canonical table. It never fails.
func (r *SheetRepo) Load(ctx context.Context) *models.Table {
	t, err := r.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrStoreMissing) {
			r.log.Debug("store missing, using empty table", zap.String("path", r.path))
		} else {
			r.log.Warn("store unreadable, using empty table", zap.String("path", r.path), zap.Error(err))
		}
		return models.EmptyTable()
	}
	return t
}

// Append adds rec as the last row and rewrites the workbook.
func (r *SheetRepo) Append(ctx context.Context, rec models.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// excelize truncates long cells and rewrites characters XML cannot
	// carry, so such a row would not read back as written.
	for _, col := range models.Columns() {
		if !models.StorableText(rec.Value(col)) {
			return &WriteError{Path: r.path, Err: fmt.Errorf("column %q: value cannot be stored unchanged", col)}
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.Load(ctx)
	t.Columns = models.Columns()
	t.Rows = append(t.Rows, rec)

	if err := r.write(t); err != nil {
		r.log.Error("append failed", zap.String("path", r.path), zap.Error(err))
		return &WriteError{Path: r.path, Err: err}
	}
	r.log.Info("response appended",
		zap.String("project", rec.ProjectName),
		zap.Int("rows", t.Len()))
	return nil
}

// Count returns the number of stored responses.
func (r *SheetRepo) Count(ctx context.Context) int {
	return r.Load(ctx).Len()
}

// List returns a page of responses in insertion order and the total count.
func (r *SheetRepo) List(ctx context.Context, skip, limit int) ([]models.Record, int) {
	t := r.Load(ctx)
	return page(t.Rows, skip, limit), t.Len()
}

func (r *SheetRepo) write(t *models.Table) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	for i, rec := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := rec.Row()
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".sitesurvey-*.xlsx")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	// CreateTemp opens the file 0600 and the rename keeps that mode.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}
