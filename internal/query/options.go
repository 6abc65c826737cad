package query

import (
	"context"
	"fmt"
)

// KegiatanOptions lists the distinct non-blank activity names from the
// master table, for the filter dropdowns. Reading the master rather than the
// ledger keeps the options stable across imports.
func (q *Queries) KegiatanOptions(ctx context.Context) ([]string, error) {
	return q.stringColumn(ctx, `
		SELECT DISTINCT nama_kegiatan
		FROM master_kegiatan
		WHERE nama_kegiatan IS NOT NULL AND TRIM(nama_kegiatan) <> ''
		ORDER BY nama_kegiatan`)
}

// RekapOptions lists the distinct non-blank account groups from the master
// table.
func (q *Queries) RekapOptions(ctx context.Context) ([]string, error) {
	return q.stringColumn(ctx, `
		SELECT DISTINCT rekap_rekening_belanja
		FROM master_rekening
		WHERE rekap_rekening_belanja IS NOT NULL AND TRIM(rekap_rekening_belanja) <> ''
		ORDER BY rekap_rekening_belanja`)
}

// BulanOptions lists the distinct YYYY-MM buckets present among voucher
// rows, most recent first.
func (q *Queries) BulanOptions(ctx context.Context) ([]string, error) {
	return q.stringColumn(ctx, `
		SELECT DISTINCT `+monthExpr(`b."Tgl"`)+` AS ym
		FROM bku b
		WHERE b."Bukti" LIKE '`+VoucherPrefix+`%'
		  AND `+monthExpr(`b."Tgl"`)+` <> ''
		ORDER BY ym DESC`)
}

func (q *Queries) stringColumn(ctx context.Context, sqlText string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("select options: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate options: %w", err)
	}
	return out, nil
}
