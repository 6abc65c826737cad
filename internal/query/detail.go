package query

import (
	"context"
	"database/sql"
	"fmt"
)

// VoucherDetailRow is one cash-book row of a single voucher, as shown on the
// handover-certificate (BAST) page and fed to the document exports.
type VoucherDetailRow struct {
	Tgl           string
	Keg           string
	NamaKegiatan  string
	Rek           string
	NamaRekening  string
	RekapRekening string
	Uraian        string
	Out           float64
}

// ItemDetailRow is one purchased-item line of a single voucher.
type ItemDetailRow struct {
	IDBarang     string
	Uraian       string
	JumlahBarang string
	HargaSatuan  string
	Realisasi    string
	SumberData   string
}

// VoucherRows returns every cash-book row of one voucher in insertion order.
// An unknown voucher yields an empty slice.
func (q *Queries) VoucherRows(ctx context.Context, bpu string) ([]VoucherDetailRow, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT
		b."Tgl", b."Keg", k.nama_kegiatan, b."Rek", r.nama_rekening_belanja,
		r.rekap_rekening_belanja, b."Uraian", COALESCE(CAST(b."Out" AS REAL), 0)
	`+ledgerFrom+`
	WHERE b."Bukti" = ?
	ORDER BY b.rowid ASC`, bpu)
	if err != nil {
		return nil, fmt.Errorf("select voucher rows: %w", err)
	}
	defer rows.Close()

	var out []VoucherDetailRow
	for rows.Next() {
		var row VoucherDetailRow
		var tgl, keg, namaKeg, rek, namaRek, rekap, uraian sql.NullString
		if err := rows.Scan(&tgl, &keg, &namaKeg, &rek, &namaRek, &rekap, &uraian, &row.Out); err != nil {
			return nil, fmt.Errorf("scan voucher row: %w", err)
		}
		row.Tgl = text(tgl)
		row.Keg = text(keg)
		row.NamaKegiatan = text(namaKeg)
		row.Rek = text(rek)
		row.NamaRekening = text(namaRek)
		row.RekapRekening = text(rekap)
		row.Uraian = text(uraian)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate voucher rows: %w", err)
	}
	return out, nil
}

// VoucherItems returns every item-purchase line of one voucher in insertion
// order. A voucher without item details yields an empty slice, not an error.
func (q *Queries) VoucherItems(ctx context.Context, bpu string) ([]ItemDetailRow, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT
		"ID Barang", "Uraian", "Jumlah Barang", "Harga Satuan", "Realisasi", "Sumber Data"
	FROM bhp_bhm
	WHERE "No Bukti" = ?
	ORDER BY rowid ASC`, bpu)
	if err != nil {
		return nil, fmt.Errorf("select voucher items: %w", err)
	}
	defer rows.Close()

	var out []ItemDetailRow
	for rows.Next() {
		var row ItemDetailRow
		var id, uraian, jumlah, harga, realisasi, sumber sql.NullString
		if err := rows.Scan(&id, &uraian, &jumlah, &harga, &realisasi, &sumber); err != nil {
			return nil, fmt.Errorf("scan voucher item: %w", err)
		}
		row.IDBarang = text(id)
		row.Uraian = text(uraian)
		row.JumlahBarang = text(jumlah)
		row.HargaSatuan = text(harga)
		row.Realisasi = text(realisasi)
		row.SumberData = text(sumber)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate voucher items: %w", err)
	}
	return out, nil
}
