package http

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"arkas/internal/importer"
)

type importPage struct {
	Messages []flash
}

type flash struct {
	Kind string // "ok" or "error"
	Text string
}

func (s *Server) handleImportMenu(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "import_menu.html", importPage{})
}

func (s *Server) handleImportOutputForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "import_output.html", importPage{})
}

// handleImportOutput loads an ARKAS output workbook (sheets BKU and
// BHP_BHM) into the ledger tables.
func (s *Server) handleImportOutput(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.uploadedWorkbook(w, r)
	if err != nil {
		s.render(w, r, "import_output.html", importPage{Messages: []flash{{"error", err.Error()}}})
		return
	}
	defer file.Close()

	mode := importer.ParseMode(r.FormValue("mode"))
	res, err := s.importer.ImportWorkbook(r.Context(), file, mode)
	if err != nil {
		slog.ErrorContext(r.Context(), "Workbook import failed", "error", err, "file", header.Filename)
		s.render(w, r, "import_output.html", importPage{Messages: []flash{{"error", "Gagal membaca workbook: " + err.Error()}}})
		return
	}

	var msgs []flash
	if res.BKUErr != nil {
		msgs = append(msgs, flash{"error", "Sheet BKU tidak ditemukan / gagal dibaca: " + res.BKUErr.Error()})
	} else {
		msgs = append(msgs, flash{"ok", "BKU berhasil diimport."})
	}
	if res.BHPErr != nil {
		msgs = append(msgs, flash{"error", "Sheet BHP_BHM tidak ditemukan / gagal dibaca: " + res.BHPErr.Error()})
	} else {
		msgs = append(msgs, flash{"ok", "BHP_BHM berhasil diimport."})
	}
	s.render(w, r, "import_output.html", importPage{Messages: msgs})
}

func (s *Server) handleImportKegiatanForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "import_master_kegiatan.html", importPage{})
}

func (s *Server) handleImportKegiatan(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.uploadedWorkbook(w, r)
	if err != nil {
		s.render(w, r, "import_master_kegiatan.html", importPage{Messages: []flash{{"error", err.Error()}}})
		return
	}
	defer file.Close()

	n, err := s.importer.ImportMasterKegiatan(r.Context(), file)
	if err != nil {
		slog.ErrorContext(r.Context(), "Master kegiatan import failed", "error", err, "file", header.Filename)
		s.render(w, r, "import_master_kegiatan.html", importPage{Messages: []flash{{"error", "Gagal import master kegiatan: " + err.Error()}}})
		return
	}
	s.render(w, r, "import_master_kegiatan.html", importPage{Messages: []flash{{"ok", "Master Kegiatan berhasil diimport (replace)."}}})
	slog.InfoContext(r.Context(), "Master kegiatan imported", "rows", n)
}

func (s *Server) handleImportRekeningForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "import_master_rekening.html", importPage{})
}

func (s *Server) handleImportRekening(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.uploadedWorkbook(w, r)
	if err != nil {
		s.render(w, r, "import_master_rekening.html", importPage{Messages: []flash{{"error", err.Error()}}})
		return
	}
	defer file.Close()

	n, err := s.importer.ImportMasterRekening(r.Context(), file)
	if err != nil {
		slog.ErrorContext(r.Context(), "Master rekening import failed", "error", err, "file", header.Filename)
		s.render(w, r, "import_master_rekening.html", importPage{Messages: []flash{{"error", "Gagal import master rekening: " + err.Error()}}})
		return
	}
	s.render(w, r, "import_master_rekening.html", importPage{Messages: []flash{{"ok", "Master Rekening berhasil diimport (replace)."}}})
	slog.InfoContext(r.Context(), "Master rekening imported", "rows", n)
}

func (s *Server) handleResetData(w http.ResponseWriter, r *http.Request) {
	if err := s.importer.Reset(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Reset failed", "error", err)
		s.render(w, r, "import_menu.html", importPage{Messages: []flash{{"error", "Gagal reset data: " + err.Error()}}})
		return
	}
	s.render(w, r, "import_menu.html", importPage{Messages: []flash{{"ok", "Semua data BKU dan BHP/BHM berhasil direset."}}})
}

type uploadError string

func (e uploadError) Error() string { return string(e) }

// uploadedWorkbook validates and returns the posted .xlsx file.
func (s *Server) uploadedWorkbook(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		return nil, nil, uploadError("Formulir tidak valid.")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, uploadError("File belum dipilih.")
	}
	if strings.ToLower(filepath.Ext(header.Filename)) != ".xlsx" {
		file.Close()
		return nil, nil, uploadError("File harus .xlsx")
	}
	return file, header, nil
}
