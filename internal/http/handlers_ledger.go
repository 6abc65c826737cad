package http

import (
	"log/slog"
	"net/http"

	"arkas/internal/query"
)

// listPage is the template payload shared by the three list views.
type listPage struct {
	Filter       query.Filter
	KegiatanList []string
	RekapList    []string
	BulanList    []string
	Pagination   query.Pagination
	PerPages     []int

	LedgerRows    []query.LedgerRow
	LedgerSummary query.LedgerSummary

	ItemRows    []query.ItemRow
	ItemSummary query.ItemSummary

	Vouchers       []query.VoucherGroup
	VoucherSummary query.VoucherSummary
}

func (s *Server) listOptions(r *http.Request, page *listPage) {
	ctx := r.Context()
	var err error
	if page.KegiatanList, err = s.queries.KegiatanOptions(ctx); err != nil {
		slog.ErrorContext(ctx, "Kegiatan options failed", "error", err)
	}
	if page.RekapList, err = s.queries.RekapOptions(ctx); err != nil {
		slog.ErrorContext(ctx, "Rekap options failed", "error", err)
	}
}

func (s *Server) handleBKU(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	pageNo, perPage := parsePageArgs(r)

	rows, summary, pg, err := s.queries.Ledger(r.Context(), f, pageNo, perPage)
	if err != nil {
		slog.ErrorContext(r.Context(), "BKU query failed", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	page := listPage{
		Filter:        f,
		Pagination:    pg,
		PerPages:      query.PerPageOptions,
		LedgerRows:    rows,
		LedgerSummary: summary,
	}
	s.listOptions(r, &page)
	s.render(w, r, "bku.html", page)
}

func (s *Server) handleBHP(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	pageNo, perPage := parsePageArgs(r)

	rows, summary, pg, err := s.queries.Items(r.Context(), f, pageNo, perPage)
	if err != nil {
		slog.ErrorContext(r.Context(), "BHP query failed", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	page := listPage{
		Filter:      f,
		Pagination:  pg,
		PerPages:    query.PerPageOptions,
		ItemRows:    rows,
		ItemSummary: summary,
	}
	s.listOptions(r, &page)
	s.render(w, r, "bhp.html", page)
}

func (s *Server) handleSPJ(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	pageNo, perPage := parsePageArgs(r)

	groups, summary, pg, err := s.queries.Vouchers(r.Context(), f, pageNo, perPage)
	if err != nil {
		slog.ErrorContext(r.Context(), "SPJ query failed", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	page := listPage{
		Filter:         f,
		Pagination:     pg,
		PerPages:       query.PerPageOptions,
		Vouchers:       groups,
		VoucherSummary: summary,
	}
	s.listOptions(r, &page)
	if page.BulanList, err = s.queries.BulanOptions(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Bulan options failed", "error", err)
	}
	s.render(w, r, "spj_bpu.html", page)
}
