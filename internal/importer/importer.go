// Package importer loads ARKAS spreadsheet exports into the ledger tables
// and replaces the master lookup tables wholesale.
package importer

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Mode selects what happens to existing ledger rows on import.
type Mode string

const (
	Append  Mode = "append"
	Replace Mode = "replace"
)

// ParseMode maps a raw form value to a Mode, defaulting to Append.
func ParseMode(raw string) Mode {
	if Mode(raw) == Replace {
		return Replace
	}
	return Append
}

var bkuColumns = []string{"Tgl", "Keg", "Rek", "Bukti", "Uraian", "In", "Out", "Saldo"}

var bhpColumns = []string{
	"Tanggal", "Kode Kegiatan", "Kode Rekening", "No Bukti", "ID Barang",
	"Uraian", "Jumlah Barang", "Harga Satuan", "Realisasi", "Sumber Data",
}

// numeric columns per sheet; their cells get Indonesian decimal-comma
// normalization on the way in.
var bkuNumeric = map[string]bool{"In": true, "Out": true, "Saldo": true}
var bhpNumeric = map[string]bool{"Jumlah Barang": true, "Harga Satuan": true, "Realisasi": true}

// Importer writes bulk data into the store. It is the only component besides
// Reset that mutates the ledger tables.
type Importer struct {
	db *sql.DB
}

func New(db *sql.DB) *Importer {
	return &Importer{db: db}
}

// WorkbookResult reports the outcome per sheet. A missing sheet is an error
// for that sheet only; the other sheet still imports.
type WorkbookResult struct {
	BKURows int
	BHPRows int
	BKUErr  error
	BHPErr  error
}

// ImportWorkbook loads the BKU and BHP_BHM sheets of an ARKAS output
// workbook into their ledger tables.
func (im *Importer) ImportWorkbook(ctx context.Context, r io.Reader, mode Mode) (WorkbookResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return WorkbookResult{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var res WorkbookResult
	res.BKURows, res.BKUErr = im.importSheet(ctx, f, "BKU", "bku", bkuColumns, bkuNumeric, mode)
	res.BHPRows, res.BHPErr = im.importSheet(ctx, f, "BHP_BHM", "bhp_bhm", bhpColumns, bhpNumeric, mode)

	slog.InfoContext(ctx, "Workbook imported",
		"mode", string(mode),
		"bku_rows", res.BKURows,
		"bhp_rows", res.BHPRows)
	return res, nil
}

func (im *Importer) importSheet(ctx context.Context, f *excelize.File, sheet, table string, columns []string, numeric map[string]bool, mode Mode) (int, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("sheet %s is empty", sheet)
	}

	colIdx, err := headerIndex(rows[0], columns)
	if err != nil {
		return 0, fmt.Errorf("sheet %s: %w", sheet, err)
	}

	tx, err := im.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback()

	if mode == Replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return 0, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(table, columns))
	if err != nil {
		return 0, fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	count := 0
	for _, row := range rows[1:] {
		args := make([]any, len(columns))
		blank := true
		for i, col := range columns {
			v := ""
			if idx := colIdx[col]; idx < len(row) {
				v = strings.TrimSpace(row[idx])
			}
			if numeric[col] {
				v = NormalizeDecimalComma(v)
			}
			if v != "" {
				blank = false
			}
			args[i] = v
		}
		if blank {
			continue
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert %s row: %w", table, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit %s import: %w", table, err)
	}
	return count, nil
}

// ImportMasterKegiatan replaces the activity master wholesale.
func (im *Importer) ImportMasterKegiatan(ctx context.Context, r io.Reader) (int, error) {
	return im.importMaster(ctx, r,
		"master_kegiatan",
		[]string{"kode_kegiatan", "nama_kegiatan"},
		`CREATE INDEX IF NOT EXISTS idx_master_kegiatan_kode ON master_kegiatan(kode_kegiatan)`)
}

// ImportMasterRekening replaces the account master wholesale.
func (im *Importer) ImportMasterRekening(ctx context.Context, r io.Reader) (int, error) {
	return im.importMaster(ctx, r,
		"master_rekening",
		[]string{"kode_rekening_belanja", "nama_rekening_belanja", "rekap_rekening_belanja"},
		`CREATE INDEX IF NOT EXISTS idx_master_rekening_kode ON master_rekening(kode_rekening_belanja)`)
}

func (im *Importer) importMaster(ctx context.Context, r io.Reader, table string, columns []string, indexSQL string) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("open master workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("read master sheet: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("master sheet is empty")
	}

	colIdx, err := headerIndex(rows[0], columns)
	if err != nil {
		return 0, err
	}

	tx, err := im.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin master tx: %w", err)
	}
	defer tx.Rollback()

	// Masters are replaced wholesale on every import, never merged.
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(table, columns))
	if err != nil {
		return 0, fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	count := 0
	for _, row := range rows[1:] {
		args := make([]any, len(columns))
		blank := true
		for i, col := range columns {
			v := ""
			if idx := colIdx[col]; idx < len(row) {
				v = strings.TrimSpace(row[idx])
			}
			if v != "" {
				blank = false
			}
			args[i] = v
		}
		if blank {
			continue
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert %s row: %w", table, err)
		}
		count++
	}

	if _, err := tx.ExecContext(ctx, indexSQL); err != nil {
		return 0, fmt.Errorf("index %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit %s import: %w", table, err)
	}

	slog.InfoContext(ctx, "Master replaced", "table", table, "rows", count)
	return count, nil
}

// Reset bulk-deletes both ledger tables. Masters, settings and annotations
// are left alone.
func (im *Importer) Reset(ctx context.Context) error {
	tx, err := im.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bku`); err != nil {
		return fmt.Errorf("reset bku: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bhp_bhm`); err != nil {
		return fmt.Errorf("reset bhp_bhm: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}

	slog.InfoContext(ctx, "Ledger tables reset")
	return nil
}

// headerIndex locates each wanted column in the header row.
func headerIndex(header []string, wanted []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	out := make(map[string]int, len(wanted))
	var missing []string
	for _, col := range wanted {
		i, ok := idx[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		out[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func insertSQL(table string, columns []string) string {
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = `"` + c + `"`
		marks[i] = "?"
	}
	return `INSERT INTO ` + table + ` (` + strings.Join(quoted, ", ") + `) VALUES (` + strings.Join(marks, ", ") + `)`
}
