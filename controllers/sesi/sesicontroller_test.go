package sesi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"SIPRESIS/models"
)

func TestSusunStatusHadir(t *testing.T) {
	waktu := time.Date(2026, 3, 9, 7, 45, 0, 0, time.Local)
	pendaftaran := []models.Pendaftaran{
		{Siswa: &models.Siswa{Id: "s1", Nis: "2024001", Nama: "Budi Santoso"}},
		{Siswa: &models.Siswa{Id: "s2", Nis: "2024002", Nama: "Siti Aminah"}},
		{Siswa: &models.Siswa{Id: "s3", Nis: "2024003", Nama: "Andi Wijaya"}},
		{Siswa: nil}, // Relasi rusak jangan bikin panic
	}
	absensi := []models.Absensi{
		{SiswaId: "s1", Metode: models.MetodeFace, Confidence: 0.82, CreatedAt: waktu},
		{SiswaId: "s3", Metode: models.MetodeManual, CreatedAt: waktu},
		{SiswaId: "s9"}, // Absen siswa di luar pendaftaran diabaikan
	}

	daftar, hadir := susunStatusHadir(pendaftaran, absensi)

	assert.Len(t, daftar, 3)
	assert.Equal(t, int64(2), hadir)

	assert.Equal(t, "s1", daftar[0]["siswa_id"])
	assert.Equal(t, true, daftar[0]["hadir"])
	assert.Equal(t, models.MetodeFace, daftar[0]["metode"])
	assert.Equal(t, 0.82, daftar[0]["confidence"])
	assert.Equal(t, waktu, daftar[0]["waktu_absen"])

	assert.Equal(t, "s2", daftar[1]["siswa_id"])
	assert.Equal(t, false, daftar[1]["hadir"])
	assert.NotContains(t, daftar[1], "waktu_absen")

	assert.Equal(t, "s3", daftar[2]["siswa_id"])
	assert.Equal(t, true, daftar[2]["hadir"])
	assert.Equal(t, models.MetodeManual, daftar[2]["metode"])
}

func TestSusunStatusHadirKosong(t *testing.T) {
	daftar, hadir := susunStatusHadir(nil, nil)
	assert.Empty(t, daftar)
	assert.Equal(t, int64(0), hadir)
}
