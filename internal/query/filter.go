package query

import "strings"

// AllOption is the sentinel dropdown value meaning "no filter" for the
// kegiatan, rekap and bulan fields. It is distinct from the empty string:
// an empty kegiatan filter would otherwise match rows whose code resolves
// to no master entry.
const AllOption = "__ALL__"

// Filter is the parameter object shared by all three query shapes. Handlers
// fill it from trimmed request values; the zero value matches everything.
// All present fields combine with AND.
type Filter struct {
	// Keyword substring-matches the voucher id (SQLite LIKE, so ASCII
	// case-insensitive).
	Keyword string
	// Kegiatan matches the resolved nama_kegiatan exactly.
	Kegiatan string
	// Rekap matches the resolved rekap_rekening_belanja exactly.
	Rekap string
	// Bulan matches the derived YYYY-MM bucket. Voucher query only.
	Bulan string
	// DateFrom/DateTo bound the derived calendar date inclusively.
	// Row queries only.
	DateFrom string
	DateTo   string
}

// rowPredicates builds the WHERE fragments for the two row-level queries.
// voucherCol and dateCol are the qualified source columns, which differ
// between bku and bhp_bhm.
func (f Filter) rowPredicates(voucherCol, dateCol string) ([]string, []any) {
	where, args := f.masterPredicates(voucherCol)

	if from := strings.TrimSpace(f.DateFrom); from != "" {
		where = append(where, dateExpr(dateCol)+" >= date(?)")
		args = append(args, from)
	}
	if to := strings.TrimSpace(f.DateTo); to != "" {
		where = append(where, dateExpr(dateCol)+" <= date(?)")
		args = append(args, to)
	}

	return where, args
}

// voucherPredicates builds the WHERE fragments for the per-voucher query:
// keyword, kegiatan, rekap and the month bucket. Date ranges do not apply.
func (f Filter) voucherPredicates(voucherCol, dateCol string) ([]string, []any) {
	where, args := f.masterPredicates(voucherCol)

	if bulan := strings.TrimSpace(f.Bulan); bulan != "" && bulan != AllOption {
		where = append(where, monthExpr(dateCol)+" = ?")
		args = append(args, bulan)
	}

	return where, args
}

func (f Filter) masterPredicates(voucherCol string) ([]string, []any) {
	var where []string
	var args []any

	if f.Keyword != "" {
		where = append(where, voucherCol+" LIKE ?")
		args = append(args, "%"+f.Keyword+"%")
	}
	if f.Kegiatan != "" && f.Kegiatan != AllOption {
		where = append(where, "k.nama_kegiatan = ?")
		args = append(args, f.Kegiatan)
	}
	if f.Rekap != "" && f.Rekap != AllOption {
		where = append(where, "r.rekap_rekening_belanja = ?")
		args = append(args, f.Rekap)
	}

	return where, args
}
