package query

import (
	"context"
	"database/sql"
	"fmt"
)

// LedgerRow is one cash-book (BKU) entry joined to both master tables.
// NamaKegiatan, NamaRekening and RekapRekening are empty when the codes
// resolve to no master entry.
type LedgerRow struct {
	Tgl           string
	Keg           string
	NamaKegiatan  string
	Rek           string
	NamaRekening  string
	RekapRekening string
	Bukti         string
	Uraian        string
	In            string
	Out           string
	Saldo         string
}

// LedgerSummary totals the full filtered set, not the returned page.
type LedgerSummary struct {
	Rows     int
	TotalIn  float64
	TotalOut float64
}

const ledgerFrom = `
FROM bku b
LEFT JOIN master_kegiatan k ON b."Keg" = k.kode_kegiatan
LEFT JOIN master_rekening r ON b."Rek" = r.kode_rekening_belanja
`

// Ledger returns one page of cash-book rows matching f, newest insertion
// first, together with the filtered-set totals and the pagination state.
func (q *Queries) Ledger(ctx context.Context, f Filter, page, perPage int) ([]LedgerRow, LedgerSummary, Pagination, error) {
	where, args := f.rowPredicates(`b."Bukti"`, `b."Tgl"`)
	whereSQL := joinWhere(where)

	// Count and sums in one pass over the whole filtered set. CAST of
	// non-numeric text yields 0, so bad amounts never fail the query.
	var summary LedgerSummary
	totalSQL := `SELECT COUNT(1),
		COALESCE(SUM(CAST(b."In" AS REAL)), 0),
		COALESCE(SUM(CAST(b."Out" AS REAL)), 0) ` + ledgerFrom + whereSQL
	if err := q.db.QueryRowContext(ctx, totalSQL, args...).Scan(&summary.Rows, &summary.TotalIn, &summary.TotalOut); err != nil {
		return nil, LedgerSummary{}, Pagination{}, fmt.Errorf("count bku rows: %w", err)
	}

	pg := NewPagination(summary.Rows, page, perPage)

	rowsSQL := `SELECT
		b."Tgl", b."Keg", k.nama_kegiatan, b."Rek", r.nama_rekening_belanja,
		r.rekap_rekening_belanja, b."Bukti", b."Uraian", b."In", b."Out", b."Saldo"
	` + ledgerFrom + whereSQL + `
	ORDER BY b.rowid DESC
	LIMIT ? OFFSET ?`

	rows, err := q.db.QueryContext(ctx, rowsSQL, append(args, pg.PerPage, pg.Offset())...)
	if err != nil {
		return nil, LedgerSummary{}, Pagination{}, fmt.Errorf("select bku rows: %w", err)
	}
	defer rows.Close()

	var out []LedgerRow
	for rows.Next() {
		var row LedgerRow
		var tgl, keg, namaKeg, rek, namaRek, rekap, bukti, uraian, inAmt, outAmt, saldo sql.NullString
		if err := rows.Scan(&tgl, &keg, &namaKeg, &rek, &namaRek, &rekap, &bukti, &uraian, &inAmt, &outAmt, &saldo); err != nil {
			return nil, LedgerSummary{}, Pagination{}, fmt.Errorf("scan bku row: %w", err)
		}
		row.Tgl = text(tgl)
		row.Keg = text(keg)
		row.NamaKegiatan = text(namaKeg)
		row.Rek = text(rek)
		row.NamaRekening = text(namaRek)
		row.RekapRekening = text(rekap)
		row.Bukti = text(bukti)
		row.Uraian = text(uraian)
		row.In = text(inAmt)
		row.Out = text(outAmt)
		row.Saldo = text(saldo)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, LedgerSummary{}, Pagination{}, fmt.Errorf("iterate bku rows: %w", err)
	}

	return out, summary, pg, nil
}

func joinWhere(where []string) string {
	if len(where) == 0 {
		return ""
	}
	s := " WHERE " + where[0]
	for _, w := range where[1:] {
		s += " AND " + w
	}
	return s
}
