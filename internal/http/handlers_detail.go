package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"arkas/internal/override"
	"arkas/internal/query"
)

// prefillKegiatan picks a default activity for a voucher from its ledger
// rows: the resolved master name when present, the raw code otherwise.
func prefillKegiatan(rows []query.VoucherDetailRow) string {
	if len(rows) == 0 {
		return ""
	}
	if v := strings.TrimSpace(rows[0].NamaKegiatan); v != "" {
		return v
	}
	return strings.TrimSpace(rows[0].Keg)
}

type bastPage struct {
	BPU      string
	Rows     []query.VoucherDetailRow
	Items    []query.ItemDetailRow
	TotalOut float64
	Override override.Override
	Photos   []override.Photo
}

func (s *Server) handleBASTDetail(w http.ResponseWriter, r *http.Request) {
	bpu := r.PathValue("bpu")

	rows, err := s.queries.VoucherRows(r.Context(), bpu)
	if err != nil {
		slog.ErrorContext(r.Context(), "Voucher rows failed", "error", err, "bpu", bpu)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	if len(rows) == 0 {
		http.NotFound(w, r)
		return
	}

	items, err := s.queries.VoucherItems(r.Context(), bpu)
	if err != nil {
		slog.ErrorContext(r.Context(), "Voucher items failed", "error", err, "bpu", bpu)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	ov, err := s.overrides.Get(r.Context(), bpu)
	if err != nil {
		slog.ErrorContext(r.Context(), "Override lookup failed", "error", err, "bpu", bpu)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	if strings.TrimSpace(ov.KegiatanOverride) == "" {
		ov.KegiatanOverride = prefillKegiatan(rows)
	}

	photos, err := s.overrides.Photos(r.Context(), bpu)
	if err != nil {
		slog.ErrorContext(r.Context(), "Photo list failed", "error", err, "bpu", bpu)
	}

	var total float64
	for _, row := range rows {
		total += row.Out
	}

	s.render(w, r, "bast.html", bastPage{
		BPU:      bpu,
		Rows:     rows,
		Items:    items,
		TotalOut: total,
		Override: ov,
		Photos:   photos,
	})
}

type editPage struct {
	BPU             string
	Override        override.Override
	Photos          []override.Photo
	DefaultKegiatan string
	Saved           bool
}

func (s *Server) handleEditBPU(w http.ResponseWriter, r *http.Request) {
	bpu := r.PathValue("bpu")

	ov, err := s.overrides.Get(r.Context(), bpu)
	if err != nil {
		slog.ErrorContext(r.Context(), "Override lookup failed", "error", err, "bpu", bpu)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	rows, err := s.queries.VoucherRows(r.Context(), bpu)
	if err != nil {
		slog.ErrorContext(r.Context(), "Voucher rows failed", "error", err, "bpu", bpu)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	defaultKegiatan := prefillKegiatan(rows)
	if strings.TrimSpace(ov.KegiatanOverride) == "" {
		ov.KegiatanOverride = defaultKegiatan
	}

	photos, err := s.overrides.Photos(r.Context(), bpu)
	if err != nil {
		slog.ErrorContext(r.Context(), "Photo list failed", "error", err, "bpu", bpu)
	}

	s.render(w, r, "edit_bpu.html", editPage{
		BPU:             bpu,
		Override:        ov,
		Photos:          photos,
		DefaultKegiatan: defaultKegiatan,
		Saved:           r.URL.Query().Get("saved") == "1",
	})
}

var allowedPhotoExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

func (s *Server) handleSaveBPU(w http.ResponseWriter, r *http.Request) {
	bpu := r.PathValue("bpu")

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := func(key string) string { return strings.TrimSpace(r.FormValue(key)) }

	ov := override.Override{
		BPU:              bpu,
		KegiatanOverride: form("kegiatan_override"),
		Pihak1Nama:       form("pihak1_nama"),
		Pihak1Jabatan:    form("pihak1_jabatan"),
		Pihak1Perusahaan: form("pihak1_perusahaan"),
		Pihak1Alamat:     form("pihak1_alamat"),
		Pihak1Telp:       form("pihak1_telp"),
	}
	if err := s.overrides.Upsert(r.Context(), ov); err != nil {
		slog.ErrorContext(r.Context(), "Override save failed", "error", err, "bpu", bpu)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}

	if err := s.overrides.RememberPihak1(r.Context(), override.Pihak1{
		Nama:       ov.Pihak1Nama,
		Jabatan:    ov.Pihak1Jabatan,
		Perusahaan: ov.Pihak1Perusahaan,
		Alamat:     ov.Pihak1Alamat,
		Telp:       ov.Pihak1Telp,
	}); err != nil {
		slog.WarnContext(r.Context(), "Pihak1 history save failed", "error", err, "bpu", bpu)
	}

	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		if err := s.savePhoto(r, bpu, file, header.Filename); err != nil {
			slog.ErrorContext(r.Context(), "Photo upload failed", "error", err, "bpu", bpu)
			http.Error(w, "photo upload failed", http.StatusBadRequest)
			return
		}
	}

	http.Redirect(w, r, "/bpu/"+bpu+"/edit?saved=1", http.StatusSeeOther)
}

var errBadPhotoType = errors.New("photo must be .jpg, .jpeg, .png or .webp")

func (s *Server) savePhoto(r *http.Request, bpu string, file io.Reader, original string) error {
	ext := strings.ToLower(filepath.Ext(original))
	if !allowedPhotoExt[ext] {
		return errBadPhotoType
	}

	name := bpu + "_" + strconv.FormatInt(time.Now().UnixNano(), 10) + ext
	dst, err := os.Create(filepath.Join(s.photoDir, name))
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return err
	}
	return s.overrides.AddPhoto(r.Context(), bpu, name)
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	bpu := r.PathValue("bpu")
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid photo id", http.StatusBadRequest)
		return
	}

	ok, err := s.overrides.DeletePhoto(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Photo delete failed", "error", err, "photo_id", id)
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}
	if !ok {
		slog.WarnContext(r.Context(), "Photo not found", "photo_id", id, "bpu", bpu)
	}

	http.Redirect(w, r, "/bast/"+bpu, http.StatusSeeOther)
}

func (s *Server) handlePihak1Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := s.overrides.SearchPihak1(r.Context(), q, 10)
	if err != nil {
		slog.ErrorContext(r.Context(), "Pihak1 search failed", "error", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	type item struct {
		Nama       string `json:"nama"`
		Jabatan    string `json:"jabatan"`
		Perusahaan string `json:"perusahaan"`
		Alamat     string `json:"alamat"`
		Telp       string `json:"telp"`
	}
	out := make([]item, 0, len(items))
	for _, p := range items {
		out = append(out, item{p.Nama, p.Jabatan, p.Perusahaan, p.Alamat, p.Telp})
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		slog.ErrorContext(r.Context(), "Pihak1 search encode failed", "error", err)
	}
}
