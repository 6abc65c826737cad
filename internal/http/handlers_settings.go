package http

import (
	"log/slog"
	"net/http"
	"strings"

	"arkas/internal/settings"
)

type settingsPage struct {
	Settings settings.Settings
	Saved    bool
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.settings.Get(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Settings load failed", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "settings.html", settingsPage{
		Settings: st,
		Saved:    r.URL.Query().Get("saved") == "1",
	})
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := func(key string) string { return strings.TrimSpace(r.FormValue(key)) }

	st := settings.Settings{
		NamaSekolah:       form("nama_sekolah"),
		NPSN:              form("npsn"),
		Alamat:            form("alamat"),
		KabKota:           form("kab_kota"),
		Tahun:             form("tahun"),
		TempatTTD:         form("tempat_ttd"),
		KepalaSekolahNama: form("kepala_sekolah_nama"),
		KepalaSekolahNIP:  form("kepala_sekolah_nip"),
		BendaharaNama:     form("bendahara_nama"),
		BendaharaNIP:      form("bendahara_nip"),
		Pihak1Nama:        form("pihak1_nama"),
		Pihak1Jabatan:     form("pihak1_jabatan"),
		Pihak1Perusahaan:  form("pihak1_perusahaan"),
		Pihak1Alamat:      form("pihak1_alamat"),
		Pihak1Telp:        form("pihak1_telp"),
		Pihak2Nama:        form("pihak2_nama"),
		Pihak2Jabatan:     form("pihak2_jabatan"),
		Pihak2NamaSatdik:  form("pihak2_nama_satdik"),
		Pihak2Alamat:      form("pihak2_alamat"),
		Pihak2Telp:        form("pihak2_telp"),
	}
	if err := s.settings.Save(r.Context(), st); err != nil {
		slog.ErrorContext(r.Context(), "Settings save failed", "error", err)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/settings?saved=1", http.StatusSeeOther)
}
