// Package http serves the ledger pages: the three list views, the voucher
// detail and annotation pages, the import screens and the settings form.
// Handlers extract and trim raw request values, build an explicit
// query.Filter and hand it to the query layer; the core never reads request
// state itself.
package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"arkas/internal/importer"
	"arkas/internal/override"
	"arkas/internal/query"
	"arkas/internal/settings"
	appweb "arkas/web"
)

type Server struct {
	http.Server
	templates *template.Template

	queries   *query.Queries
	importer  *importer.Importer
	settings  *settings.Repository
	overrides *override.Repository

	photoDir string
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr string, q *query.Queries, im *importer.Importer, st *settings.Repository, ov *override.Repository, photoDir string) (*Server, error) {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		queries:   q,
		importer:  im,
		settings:  st,
		overrides: ov,
		photoDir:  photoDir,
	}

	t, err := template.New("").Funcs(template.FuncMap{
		"rupiah": formatRupiah,
		"num":    formatNumber,
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	// Uploaded voucher photos live outside the binary.
	mux.Handle("/photos/", http.StripPrefix("/photos/", http.FileServer(http.Dir(photoDir))))

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /{$}", s.withRequestLog(s.handleBKU))
	mux.HandleFunc("GET /bhp", s.withRequestLog(s.handleBHP))
	mux.HandleFunc("GET /spj-bpu", s.withRequestLog(s.handleSPJ))

	mux.HandleFunc("GET /bast/{bpu}", s.withRequestLog(s.handleBASTDetail))
	mux.HandleFunc("GET /bpu/{bpu}/edit", s.withRequestLog(s.handleEditBPU))
	mux.HandleFunc("POST /bpu/{bpu}/edit", s.withRequestLog(s.handleSaveBPU))
	mux.HandleFunc("POST /bast/{bpu}/photos/{id}/delete", s.withRequestLog(s.handleDeletePhoto))
	mux.HandleFunc("GET /api/pihak1/search", s.withRequestLog(s.handlePihak1Search))

	mux.HandleFunc("GET /settings", s.withRequestLog(s.handleSettings))
	mux.HandleFunc("POST /settings", s.withRequestLog(s.handleSaveSettings))

	mux.HandleFunc("GET /import", s.withRequestLog(s.handleImportMenu))
	mux.HandleFunc("GET /import/output", s.withRequestLog(s.handleImportOutputForm))
	mux.HandleFunc("POST /import/output", s.withRequestLog(s.handleImportOutput))
	mux.HandleFunc("GET /import/master/kegiatan", s.withRequestLog(s.handleImportKegiatanForm))
	mux.HandleFunc("POST /import/master/kegiatan", s.withRequestLog(s.handleImportKegiatan))
	mux.HandleFunc("GET /import/master/rekening", s.withRequestLog(s.handleImportRekeningForm))
	mux.HandleFunc("POST /import/master/rekening", s.withRequestLog(s.handleImportRekening))
	mux.HandleFunc("POST /import/reset-data", s.withRequestLog(s.handleResetData))

	return s, nil
}

// withRequestLog adds security headers and request logging to responses.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := generateRequestID()
		ctx := r.Context()

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// parseFilter builds the query filter from trimmed request values. Dropdown
// fields default to the all sentinel so an absent parameter filters nothing.
func parseFilter(r *http.Request) query.Filter {
	v := r.URL.Query()
	dropdown := func(key string) string {
		if _, ok := v[key]; !ok {
			return query.AllOption
		}
		return strings.TrimSpace(v.Get(key))
	}
	return query.Filter{
		Keyword:  strings.TrimSpace(v.Get("keyword")),
		Kegiatan: dropdown("kegiatan"),
		Rekap:    dropdown("rekap"),
		Bulan:    dropdown("bulan"),
		DateFrom: strings.TrimSpace(v.Get("tgl_from")),
		DateTo:   strings.TrimSpace(v.Get("tgl_to")),
	}
}

func parsePageArgs(r *http.Request) (int, int) {
	v := r.URL.Query()
	return query.ParsePageArgs(v.Get("page"), v.Get("per_page"))
}

// formatRupiah renders an amount the way the certificates print it:
// "Rp 1.234.567", no decimals, dots as thousands separators.
func formatRupiah(v float64) string {
	return "Rp " + formatNumber(v)
}

func formatNumber(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	n := int64(v + 0.5)
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(s[i])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
