package query

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// VoucherPrefix tags the voucher ids this application aggregates. Rows whose
// Bukti does not start with it are never vouchers and are excluded before
// any user filter.
const VoucherPrefix = "BPU"

// VoucherGroup is one disbursement voucher: every bku row sharing a Bukti
// and the same resolved kegiatan/rekap collapses into one group. Rows with
// the same Bukti but a different resolved kegiatan or rekap form separate
// groups; that anomaly is surfaced, not corrected.
type VoucherGroup struct {
	Bukti         string
	Tgl           string
	Keg           string
	NamaKegiatan  string
	Rek           string
	RekapRekening string
	UraianGabung  string
	TotalOut      float64
}

// VoucherSummary totals every matching group, not just the returned page.
type VoucherSummary struct {
	Rows     int
	TotalOut float64
}

// Vouchers returns one page of per-voucher aggregates matching f, ordered by
// the numeric suffix of the voucher id. Pagination counts groups, not rows.
//
// A voucher id on the returned page that does not parse as "BPU<n>" fails
// the whole call: ordering by numeric suffix is meaningless for such ids and
// silently mis-sorting them would corrupt the report.
func (q *Queries) Vouchers(ctx context.Context, f Filter, page, perPage int) ([]VoucherGroup, VoucherSummary, Pagination, error) {
	where, args := f.voucherPredicates(`b."Bukti"`, `b."Tgl"`)
	where = append([]string{`b."Bukti" LIKE '` + VoucherPrefix + `%'`}, where...)
	whereSQL := joinWhere(where)

	const groupBy = ` GROUP BY b."Bukti", k.nama_kegiatan, r.rekap_rekening_belanja`

	var summary VoucherSummary
	countSQL := `SELECT COUNT(1) FROM (
		SELECT b."Bukti" ` + ledgerFrom + whereSQL + groupBy + `
	) t`
	if err := q.db.QueryRowContext(ctx, countSQL, args...).Scan(&summary.Rows); err != nil {
		return nil, VoucherSummary{}, Pagination{}, fmt.Errorf("count voucher groups: %w", err)
	}

	// Sum of per-group outflow sums equals the plain sum over the matching
	// rows, so the summary needs no grouping pass.
	sumSQL := `SELECT COALESCE(SUM(CAST(b."Out" AS REAL)), 0) ` + ledgerFrom + whereSQL
	if err := q.db.QueryRowContext(ctx, sumSQL, args...).Scan(&summary.TotalOut); err != nil {
		return nil, VoucherSummary{}, Pagination{}, fmt.Errorf("sum voucher outflow: %w", err)
	}

	pg := NewPagination(summary.Rows, page, perPage)

	groupsSQL := `SELECT
		b."Bukti", MIN(b."Tgl"), MIN(b."Keg"), k.nama_kegiatan, MIN(b."Rek"),
		r.rekap_rekening_belanja, GROUP_CONCAT(DISTINCT b."Uraian"),
		COALESCE(SUM(CAST(b."Out" AS REAL)), 0)
	` + ledgerFrom + whereSQL + groupBy + `
	ORDER BY CAST(REPLACE(b."Bukti", '` + VoucherPrefix + `', '') AS INTEGER) ASC
	LIMIT ? OFFSET ?`

	rows, err := q.db.QueryContext(ctx, groupsSQL, append(args, pg.PerPage, pg.Offset())...)
	if err != nil {
		return nil, VoucherSummary{}, Pagination{}, fmt.Errorf("select voucher groups: %w", err)
	}
	defer rows.Close()

	var out []VoucherGroup
	for rows.Next() {
		var g VoucherGroup
		var bukti, tgl, keg, namaKeg, rek, rekap, uraian sql.NullString
		if err := rows.Scan(&bukti, &tgl, &keg, &namaKeg, &rek, &rekap, &uraian, &g.TotalOut); err != nil {
			return nil, VoucherSummary{}, Pagination{}, fmt.Errorf("scan voucher group: %w", err)
		}
		g.Bukti = text(bukti)
		g.Tgl = text(tgl)
		g.Keg = text(keg)
		g.NamaKegiatan = text(namaKeg)
		g.Rek = text(rek)
		g.RekapRekening = text(rekap)
		// GROUP_CONCAT joins the distinct descriptions with commas;
		// present them with the report separator instead.
		g.UraianGabung = strings.ReplaceAll(text(uraian), ",", " | ")

		if _, err := VoucherNumber(g.Bukti); err != nil {
			return nil, VoucherSummary{}, Pagination{}, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, VoucherSummary{}, Pagination{}, fmt.Errorf("iterate voucher groups: %w", err)
	}

	return out, summary, pg, nil
}

// VoucherNumber extracts the integer suffix of a voucher id, the key the
// per-voucher report is ordered by.
func VoucherNumber(bukti string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(bukti, VoucherPrefix))
	if err != nil {
		return 0, fmt.Errorf("voucher id %q has no numeric suffix: %w", bukti, err)
	}
	return n, nil
}
