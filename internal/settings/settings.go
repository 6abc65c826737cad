// Package settings stores the single-row application settings: school
// identity, signatories and the default handover-certificate parties.
package settings

import (
	"context"
	"database/sql"
	"fmt"
)

type Settings struct {
	NamaSekolah       string
	NPSN              string
	Alamat            string
	KabKota           string
	Tahun             string
	TempatTTD         string
	KepalaSekolahNama string
	KepalaSekolahNIP  string
	BendaharaNama     string
	BendaharaNIP      string

	// Default parties for the handover certificate (BAST).
	Pihak1Nama       string
	Pihak1Jabatan    string
	Pihak1Perusahaan string
	Pihak1Alamat     string
	Pihak1Telp       string
	Pihak2Nama       string
	Pihak2Jabatan    string
	Pihak2NamaSatdik string
	Pihak2Alamat     string
	Pihak2Telp       string
}

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context) (Settings, error) {
	row := r.db.QueryRowContext(ctx, `SELECT
		nama_sekolah, npsn, alamat, kab_kota, tahun, tempat_ttd,
		kepala_sekolah_nama, kepala_sekolah_nip, bendahara_nama, bendahara_nip,
		pihak1_nama, pihak1_jabatan, pihak1_perusahaan, pihak1_alamat, pihak1_telp,
		pihak2_nama, pihak2_jabatan, pihak2_nama_satdik, pihak2_alamat, pihak2_telp
	FROM app_settings WHERE id = 1`)

	fields := make([]sql.NullString, 20)
	dest := make([]any, len(fields))
	for i := range fields {
		dest[i] = &fields[i]
	}
	if err := row.Scan(dest...); err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	get := func(i int) string {
		if fields[i].Valid {
			return fields[i].String
		}
		return ""
	}
	return Settings{
		NamaSekolah:       get(0),
		NPSN:              get(1),
		Alamat:            get(2),
		KabKota:           get(3),
		Tahun:             get(4),
		TempatTTD:         get(5),
		KepalaSekolahNama: get(6),
		KepalaSekolahNIP:  get(7),
		BendaharaNama:     get(8),
		BendaharaNIP:      get(9),
		Pihak1Nama:        get(10),
		Pihak1Jabatan:     get(11),
		Pihak1Perusahaan:  get(12),
		Pihak1Alamat:      get(13),
		Pihak1Telp:        get(14),
		Pihak2Nama:        get(15),
		Pihak2Jabatan:     get(16),
		Pihak2NamaSatdik:  get(17),
		Pihak2Alamat:      get(18),
		Pihak2Telp:        get(19),
	}, nil
}

func (r *Repository) Save(ctx context.Context, s Settings) error {
	_, err := r.db.ExecContext(ctx, `UPDATE app_settings SET
		nama_sekolah = ?, npsn = ?, alamat = ?, kab_kota = ?, tahun = ?, tempat_ttd = ?,
		kepala_sekolah_nama = ?, kepala_sekolah_nip = ?, bendahara_nama = ?, bendahara_nip = ?,
		pihak1_nama = ?, pihak1_jabatan = ?, pihak1_perusahaan = ?, pihak1_alamat = ?, pihak1_telp = ?,
		pihak2_nama = ?, pihak2_jabatan = ?, pihak2_nama_satdik = ?, pihak2_alamat = ?, pihak2_telp = ?
	WHERE id = 1`,
		s.NamaSekolah, s.NPSN, s.Alamat, s.KabKota, s.Tahun, s.TempatTTD,
		s.KepalaSekolahNama, s.KepalaSekolahNIP, s.BendaharaNama, s.BendaharaNIP,
		s.Pihak1Nama, s.Pihak1Jabatan, s.Pihak1Perusahaan, s.Pihak1Alamat, s.Pihak1Telp,
		s.Pihak2Nama, s.Pihak2Jabatan, s.Pihak2NamaSatdik, s.Pihak2Alamat, s.Pihak2Telp)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
