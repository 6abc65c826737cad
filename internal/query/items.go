package query

import (
	"context"
	"database/sql"
	"fmt"
)

// ItemRow is one purchased-item (BHP/BHM) line joined to both master tables.
type ItemRow struct {
	Tanggal       string
	KodeKegiatan  string
	NamaKegiatan  string
	KodeRekening  string
	NamaRekening  string
	RekapRekening string
	NoBukti       string
	IDBarang      string
	Uraian        string
	JumlahBarang  string
	HargaSatuan   string
	Realisasi     string
	SumberData    string
}

// ItemSummary totals the full filtered set, not the returned page.
type ItemSummary struct {
	Rows              int
	TotalJumlahBarang float64
	TotalRealisasi    float64
}

const itemFrom = `
FROM bhp_bhm b
LEFT JOIN master_kegiatan k ON b."Kode Kegiatan" = k.kode_kegiatan
LEFT JOIN master_rekening r ON b."Kode Rekening" = r.kode_rekening_belanja
`

// Items returns one page of item-purchase rows matching f, newest insertion
// first, together with the filtered-set totals and the pagination state.
func (q *Queries) Items(ctx context.Context, f Filter, page, perPage int) ([]ItemRow, ItemSummary, Pagination, error) {
	where, args := f.rowPredicates(`b."No Bukti"`, `b."Tanggal"`)
	whereSQL := joinWhere(where)

	var summary ItemSummary
	totalSQL := `SELECT COUNT(1),
		COALESCE(SUM(CAST(b."Jumlah Barang" AS REAL)), 0),
		COALESCE(SUM(CAST(b."Realisasi" AS REAL)), 0) ` + itemFrom + whereSQL
	if err := q.db.QueryRowContext(ctx, totalSQL, args...).Scan(&summary.Rows, &summary.TotalJumlahBarang, &summary.TotalRealisasi); err != nil {
		return nil, ItemSummary{}, Pagination{}, fmt.Errorf("count bhp_bhm rows: %w", err)
	}

	pg := NewPagination(summary.Rows, page, perPage)

	rowsSQL := `SELECT
		b."Tanggal", b."Kode Kegiatan", k.nama_kegiatan, b."Kode Rekening",
		r.nama_rekening_belanja, r.rekap_rekening_belanja, b."No Bukti",
		b."ID Barang", b."Uraian", b."Jumlah Barang", b."Harga Satuan",
		b."Realisasi", b."Sumber Data"
	` + itemFrom + whereSQL + `
	ORDER BY b.rowid DESC
	LIMIT ? OFFSET ?`

	rows, err := q.db.QueryContext(ctx, rowsSQL, append(args, pg.PerPage, pg.Offset())...)
	if err != nil {
		return nil, ItemSummary{}, Pagination{}, fmt.Errorf("select bhp_bhm rows: %w", err)
	}
	defer rows.Close()

	var out []ItemRow
	for rows.Next() {
		var row ItemRow
		var tanggal, kodeKeg, namaKeg, kodeRek, namaRek, rekap, noBukti, idBarang, uraian, jumlah, harga, realisasi, sumber sql.NullString
		if err := rows.Scan(&tanggal, &kodeKeg, &namaKeg, &kodeRek, &namaRek, &rekap, &noBukti, &idBarang, &uraian, &jumlah, &harga, &realisasi, &sumber); err != nil {
			return nil, ItemSummary{}, Pagination{}, fmt.Errorf("scan bhp_bhm row: %w", err)
		}
		row.Tanggal = text(tanggal)
		row.KodeKegiatan = text(kodeKeg)
		row.NamaKegiatan = text(namaKeg)
		row.KodeRekening = text(kodeRek)
		row.NamaRekening = text(namaRek)
		row.RekapRekening = text(rekap)
		row.NoBukti = text(noBukti)
		row.IDBarang = text(idBarang)
		row.Uraian = text(uraian)
		row.JumlahBarang = text(jumlah)
		row.HargaSatuan = text(harga)
		row.Realisasi = text(realisasi)
		row.SumberData = text(sumber)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, ItemSummary{}, Pagination{}, fmt.Errorf("iterate bhp_bhm rows: %w", err)
	}

	return out, summary, pg, nil
}
