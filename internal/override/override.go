// Package override holds the per-voucher annotations: an activity override,
// the party-1 data printed on the handover certificate, photo attachments
// and the party-1 autocomplete history.
package override

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Override carries the editable per-voucher fields. Empty fields fall back
// to the values resolved from the ledger or the global settings.
type Override struct {
	BPU              string
	KegiatanOverride string
	Pihak1Nama       string
	Pihak1Jabatan    string
	Pihak1Perusahaan string
	Pihak1Alamat     string
	Pihak1Telp       string
}

// Photo is one attachment record; the file itself lives on disk under the
// photo directory.
type Photo struct {
	ID         int64
	BPU        string
	Filename   string
	UploadedAt string
}

// Pihak1 is one remembered certificate party, used for autocomplete.
type Pihak1 struct {
	Nama       string
	Jabatan    string
	Perusahaan string
	Alamat     string
	Telp       string
}

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Get returns the stored override for a voucher, or a zero Override when
// none has been saved yet.
func (r *Repository) Get(ctx context.Context, bpu string) (Override, error) {
	row := r.db.QueryRowContext(ctx, `SELECT
		kegiatan_override, pihak1_nama, pihak1_jabatan, pihak1_perusahaan, pihak1_alamat, pihak1_telp
	FROM bpu_override WHERE bpu = ?`, bpu)

	var keg, nama, jabatan, perusahaan, alamat, telp sql.NullString
	err := row.Scan(&keg, &nama, &jabatan, &perusahaan, &alamat, &telp)
	if err == sql.ErrNoRows {
		return Override{BPU: bpu}, nil
	}
	if err != nil {
		return Override{}, fmt.Errorf("read override %s: %w", bpu, err)
	}

	return Override{
		BPU:              bpu,
		KegiatanOverride: keg.String,
		Pihak1Nama:       nama.String,
		Pihak1Jabatan:    jabatan.String,
		Pihak1Perusahaan: perusahaan.String,
		Pihak1Alamat:     alamat.String,
		Pihak1Telp:       telp.String,
	}, nil
}

// Upsert stores the override, replacing any previous row for the voucher.
func (r *Repository) Upsert(ctx context.Context, o Override) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO bpu_override
		(bpu, kegiatan_override, pihak1_nama, pihak1_jabatan, pihak1_perusahaan, pihak1_alamat, pihak1_telp, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(bpu) DO UPDATE SET
		kegiatan_override = excluded.kegiatan_override,
		pihak1_nama = excluded.pihak1_nama,
		pihak1_jabatan = excluded.pihak1_jabatan,
		pihak1_perusahaan = excluded.pihak1_perusahaan,
		pihak1_alamat = excluded.pihak1_alamat,
		pihak1_telp = excluded.pihak1_telp`,
		o.BPU, o.KegiatanOverride, o.Pihak1Nama, o.Pihak1Jabatan,
		o.Pihak1Perusahaan, o.Pihak1Alamat, o.Pihak1Telp,
		r.now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert override %s: %w", o.BPU, err)
	}
	return nil
}

// AddPhoto records an uploaded photo for a voucher.
func (r *Repository) AddPhoto(ctx context.Context, bpu, filename string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bpu_photos (bpu, filename, uploaded_at) VALUES (?, ?, ?)`,
		bpu, filename, r.now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("add photo for %s: %w", bpu, err)
	}
	return nil
}

// Photos lists a voucher's photos, oldest first.
func (r *Repository) Photos(ctx context.Context, bpu string) ([]Photo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, bpu, filename, uploaded_at FROM bpu_photos WHERE bpu = ? ORDER BY id ASC`, bpu)
	if err != nil {
		return nil, fmt.Errorf("list photos for %s: %w", bpu, err)
	}
	defer rows.Close()

	var out []Photo
	for rows.Next() {
		var p Photo
		var uploaded sql.NullString
		if err := rows.Scan(&p.ID, &p.BPU, &p.Filename, &uploaded); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		p.UploadedAt = uploaded.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return out, nil
}

// DeletePhoto removes one attachment record. It reports whether a record
// existed.
func (r *Repository) DeletePhoto(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bpu_photos WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete photo %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete photo %d: %w", id, err)
	}
	return n > 0, nil
}

// RememberPihak1 upserts a party into the autocomplete history, keyed by
// name. Blank names are ignored.
func (r *Repository) RememberPihak1(ctx context.Context, p Pihak1) error {
	if p.Nama == "" {
		return nil
	}

	now := r.now().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx, `UPDATE pihak1_history SET
		jabatan = ?, perusahaan = ?, alamat = ?, telp = ?, last_used_at = ?
	WHERE nama = ?`,
		p.Jabatan, p.Perusahaan, p.Alamat, p.Telp, now, p.Nama)
	if err != nil {
		return fmt.Errorf("update pihak1 history: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO pihak1_history
		(nama, jabatan, perusahaan, alamat, telp, last_used_at)
	VALUES (?, ?, ?, ?, ?, ?)`,
		p.Nama, p.Jabatan, p.Perusahaan, p.Alamat, p.Telp, now)
	if err != nil {
		return fmt.Errorf("insert pihak1 history: %w", err)
	}
	return nil
}

// SearchPihak1 returns the most recently used parties whose name contains q,
// for the autocomplete endpoint.
func (r *Repository) SearchPihak1(ctx context.Context, q string, limit int) ([]Pihak1, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `SELECT nama, jabatan, perusahaan, alamat, telp
		FROM pihak1_history
		WHERE nama LIKE ?
		ORDER BY last_used_at DESC
		LIMIT ?`, "%"+q+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search pihak1 history: %w", err)
	}
	defer rows.Close()

	var out []Pihak1
	for rows.Next() {
		var p Pihak1
		var jabatan, perusahaan, alamat, telp sql.NullString
		if err := rows.Scan(&p.Nama, &jabatan, &perusahaan, &alamat, &telp); err != nil {
			return nil, fmt.Errorf("scan pihak1 history: %w", err)
		}
		p.Jabatan = jabatan.String
		p.Perusahaan = perusahaan.String
		p.Alamat = alamat.String
		p.Telp = telp.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pihak1 history: %w", err)
	}
	return out, nil
}
