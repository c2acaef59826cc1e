package analitik

import (
	"SIPRESIS/models"
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTulisCSVAbsensi(t *testing.T) {
	waktu := time.Date(2026, 3, 9, 7, 30, 15, 0, time.Local)
	data := []models.Absensi{
		{
			Siswa:      &models.Siswa{Nis: "2024001", Nama: "Budi Santoso"},
			Sesi:       &models.Sesi{NamaSesi: "Pertemuan 1", Kelas: &models.Kelas{KodeKelas: "MTK-7A"}},
			Metode:     models.MetodeFace,
			Confidence: 0.8123,
			CreatedAt:  waktu,
		},
		{
			// Relasi nil (data lama) jangan bikin panic
			Metode:    models.MetodeManual,
			CreatedAt: waktu,
		},
	}

	var buf bytes.Buffer
	tulisCSVAbsensi(&buf, data)

	baris, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, baris, 3) // header + 2 baris data

	assert.Equal(t, []string{"Tanggal", "Jam", "NIS", "Nama Siswa", "Kelas", "Sesi", "Metode", "Confidence"}, baris[0])
	assert.Equal(t, []string{"2026-03-09", "07:30:15", "2024001", "Budi Santoso", "MTK-7A", "Pertemuan 1", "Face Recog", "0.812"}, baris[1])
	assert.Equal(t, []string{"2026-03-09", "07:30:15", "-", "-", "-", "-", "Manual", "0.000"}, baris[2])
}

func TestAgregasiMingguan(t *testing.T) {
	harian := []trenHarian{
		{Tanggal: "2026-03-01", Jumlah: 10},
		{Tanggal: "2026-03-02", Jumlah: 20},
		{Tanggal: "2026-03-03", Jumlah: 30},
		{Tanggal: "2026-03-04", Jumlah: 5},
		{Tanggal: "2026-03-05", Jumlah: 5},
		{Tanggal: "2026-03-06", Jumlah: 5},
		{Tanggal: "2026-03-07", Jumlah: 5},
		{Tanggal: "2026-03-08", Jumlah: 100},
	}

	mingguan := agregasiMingguan(harian)
	assert.Len(t, mingguan, 2)
	assert.Equal(t, "2026-03-01", mingguan[0]["minggu_mulai"])
	assert.Equal(t, int64(80), mingguan[0]["jumlah"])
	assert.Equal(t, "2026-03-08", mingguan[1]["minggu_mulai"])
	assert.Equal(t, int64(100), mingguan[1]["jumlah"])
}

func TestAgregasiMingguanKosong(t *testing.T) {
	assert.Empty(t, agregasiMingguan(nil))
}

func TestStatusKehadiran(t *testing.T) {
	kasus := []struct {
		tingkat float64
		mau     string
	}{
		{100, "Baik"},
		{75, "Baik"},
		{74.99, "Berisiko"},
		{50, "Berisiko"},
		{49.99, "Kritis"},
		{0, "Kritis"},
	}
	for _, k := range kasus {
		assert.Equal(t, k.mau, statusKehadiran(k.tingkat), "tingkat %.2f", k.tingkat)
	}
}

func TestTulisCSVRekapSiswa(t *testing.T) {
	data := []rekapSiswa{
		{
			Nis: "2024001", Nama: "Budi Santoso", Email: "budi@sekolah.id",
			KodeKelas: "MTK-7A", NamaKelas: "Matematika 7A",
			TotalSesi: 10, Hadir: 9, Tingkat: 90, Status: "Baik",
		},
		{
			// Kelas tanpa sesi selesai: semua angka nol, status kritis
			Nis: "2024002", Nama: "Siti Aminah", Email: "siti@sekolah.id",
			KodeKelas: "IPA-7B", NamaKelas: "IPA 7B",
			TotalSesi: 0, Hadir: 0, Tingkat: 0, Status: "Kritis",
		},
	}

	var buf bytes.Buffer
	tulisCSVRekapSiswa(&buf, data)

	baris, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, baris, 3)

	assert.Equal(t, []string{"NIS", "Nama Siswa", "Email", "Kode Kelas", "Nama Kelas", "Total Sesi", "Hadir", "Tingkat Kehadiran (%)", "Status"}, baris[0])
	assert.Equal(t, []string{"2024001", "Budi Santoso", "budi@sekolah.id", "MTK-7A", "Matematika 7A", "10", "9", "90.00", "Baik"}, baris[1])
	assert.Equal(t, []string{"2024002", "Siti Aminah", "siti@sekolah.id", "IPA-7B", "IPA 7B", "0", "0", "0.00", "Kritis"}, baris[2])
}
