package query

import (
	"context"
	"strconv"
	"testing"
)

func TestVouchersGrouping(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	insertKegiatan(t, q, "K1", "Pembelajaran")
	insertRekening(t, q, "R1", "ATK", "Barang")

	insertBKU(t, q, "2024-01-10", "K1", "R1", "BPU1", "Pulpen", "", "100", "")
	insertBKU(t, q, "2024-01-10", "K1", "R1", "BPU1", "Kertas", "", "50", "")
	insertBKU(t, q, "2024-01-12", "K1", "R1", "BPU2", "Lem", "", "10", "")
	insertBKU(t, q, "2024-02-01", "K1", "R1", "BPU10", "Tinta", "", "20", "")
	// Non-voucher rows never appear in the report.
	insertBKU(t, q, "2024-01-05", "K1", "R1", "TRX9", "Setoran", "", "999", "")

	groups, summary, pg, err := q.Vouchers(ctx, Filter{}, 1, 25)
	if err != nil {
		t.Fatalf("Vouchers() error = %v", err)
	}

	if summary.Rows != 3 || pg.TotalRows != 3 {
		t.Errorf("group count = %d/%d, want 3", summary.Rows, pg.TotalRows)
	}
	if summary.TotalOut != 180 {
		t.Errorf("summary.TotalOut = %v, want 180", summary.TotalOut)
	}
	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}

	// Ordered by the numeric suffix, so BPU2 sorts before BPU10.
	if groups[0].Bukti != "BPU1" || groups[1].Bukti != "BPU2" || groups[2].Bukti != "BPU10" {
		t.Errorf("group order = %s, %s, %s; want BPU1, BPU2, BPU10",
			groups[0].Bukti, groups[1].Bukti, groups[2].Bukti)
	}

	if groups[0].TotalOut != 150 {
		t.Errorf("BPU1 TotalOut = %v, want 150", groups[0].TotalOut)
	}
	if groups[0].NamaKegiatan != "Pembelajaran" || groups[0].RekapRekening != "Barang" {
		t.Errorf("BPU1 joins = %q/%q, want Pembelajaran/Barang",
			groups[0].NamaKegiatan, groups[0].RekapRekening)
	}

	if groups[0].UraianGabung != "Pulpen | Kertas" {
		t.Errorf("BPU1 UraianGabung = %q, want \"Pulpen | Kertas\"", groups[0].UraianGabung)
	}
}

func TestVouchersSplitOnDivergingMasters(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	insertKegiatan(t, q, "K1", "Pembelajaran")
	insertKegiatan(t, q, "K2", "Administrasi")
	insertRekening(t, q, "R1", "ATK", "Barang")

	// One voucher id booked under two different activities. The grouping
	// keys on the resolved names, so the anomaly shows up as two groups
	// instead of being merged away.
	insertBKU(t, q, "2024-01-10", "K1", "R1", "BPU1", "Pulpen", "", "100", "")
	insertBKU(t, q, "2024-01-11", "K2", "R1", "BPU1", "Honor", "", "50", "")

	groups, summary, pg, err := q.Vouchers(ctx, Filter{}, 1, 25)
	if err != nil {
		t.Fatalf("Vouchers() error = %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2 (one per resolved kegiatan)", len(groups))
	}
	if summary.Rows != 2 || pg.TotalRows != 2 {
		t.Errorf("group count = %d/%d, want 2", summary.Rows, pg.TotalRows)
	}
	if summary.TotalOut != 150 {
		t.Errorf("summary.TotalOut = %v, want 150", summary.TotalOut)
	}

	sums := map[string]float64{}
	for _, g := range groups {
		if g.Bukti != "BPU1" {
			t.Errorf("group Bukti = %q, want BPU1", g.Bukti)
		}
		sums[g.NamaKegiatan] = g.TotalOut
	}
	if sums["Pembelajaran"] != 100 || sums["Administrasi"] != 50 {
		t.Errorf("per-group sums = %v, want Pembelajaran=100, Administrasi=50", sums)
	}
}

func TestVouchersSummaryIndependentOfPage(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	for i := 1; i <= 30; i++ {
		insertBKU(t, q, "2024-01-10", "K1", "R1", "BPU"+strconv.Itoa(i), "u", "", "10", "")
	}

	groups1, sum1, _, err := q.Vouchers(ctx, Filter{}, 1, 25)
	if err != nil {
		t.Fatalf("Vouchers(page 1) error = %v", err)
	}
	groups2, sum2, _, err := q.Vouchers(ctx, Filter{}, 2, 25)
	if err != nil {
		t.Fatalf("Vouchers(page 2) error = %v", err)
	}

	if sum1 != sum2 {
		t.Errorf("summaries differ across pages: %+v vs %+v", sum1, sum2)
	}
	if sum1.Rows != 30 || sum1.TotalOut != 300 {
		t.Errorf("summary = %+v, want 30 groups, out 300", sum1)
	}
	if len(groups1) != 25 || len(groups2) != 5 {
		t.Errorf("page sizes = %d/%d, want 25/5", len(groups1), len(groups2))
	}
	// Numeric ordering carries across the page boundary.
	if groups2[0].Bukti != "BPU26" {
		t.Errorf("first group of page 2 = %s, want BPU26", groups2[0].Bukti)
	}
}

func TestVouchersMonthFilter(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	insertBKU(t, q, "2024-01-10", "", "", "BPU1", "a", "", "100", "")
	insertBKU(t, q, "15-01-2024", "", "", "BPU2", "b", "", "60", "")
	insertBKU(t, q, "01/02/2024", "", "", "BPU3", "c", "", "20", "")

	groups, summary, _, err := q.Vouchers(ctx, Filter{Bulan: "2024-01"}, 1, 25)
	if err != nil {
		t.Fatalf("Vouchers() error = %v", err)
	}
	if len(groups) != 2 || summary.Rows != 2 {
		t.Errorf("groups = %d (summary %d), want 2", len(groups), summary.Rows)
	}
	if summary.TotalOut != 160 {
		t.Errorf("summary.TotalOut = %v, want 160", summary.TotalOut)
	}
}

func TestVouchersRejectsMalformedVoucherID(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	insertBKU(t, q, "2024-01-10", "", "", "BPU1", "ok", "", "10", "")
	insertBKU(t, q, "2024-01-10", "", "", "BPUX", "bad", "", "10", "")

	if _, _, _, err := q.Vouchers(ctx, Filter{}, 1, 25); err == nil {
		t.Fatal("Vouchers() error = nil, want error for malformed voucher id")
	}
}

func TestVoucherNumber(t *testing.T) {
	tests := []struct {
		bukti   string
		want    int
		wantErr bool
	}{
		{"BPU1", 1, false},
		{"BPU42", 42, false},
		{"BPU007", 7, false},
		{"BPUX", 0, true},
		{"BPU", 0, true},
		{"BPU1a", 0, true},
	}

	for _, tt := range tests {
		got, err := VoucherNumber(tt.bukti)
		if (err != nil) != tt.wantErr {
			t.Errorf("VoucherNumber(%q) error = %v, wantErr %v", tt.bukti, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("VoucherNumber(%q) = %d, want %d", tt.bukti, got, tt.want)
		}
	}
}
