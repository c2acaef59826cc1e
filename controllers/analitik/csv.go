package analitik

import (
	"SIPRESIS/models"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// tulisCSVAbsensi tulis laporan absensi ke writer dalam format CSV.
// Relasi yang nil (data lama/terhapus) ditulis sebagai strip.
func tulisCSVAbsensi(w io.Writer, absensi []models.Absensi) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	_ = cw.Write([]string{"Tanggal", "Jam", "NIS", "Nama Siswa", "Kelas", "Sesi", "Metode", "Confidence"})

	for _, a := range absensi {
		nis, nama := "-", "-"
		if a.Siswa != nil {
			nis = a.Siswa.Nis
			nama = a.Siswa.Nama
		}
		kelas, sesi := "-", "-"
		if a.Sesi != nil {
			sesi = a.Sesi.NamaSesi
			if a.Sesi.Kelas != nil {
				kelas = a.Sesi.Kelas.KodeKelas
			}
		}

		_ = cw.Write([]string{
			a.CreatedAt.Format("2006-01-02"),
			a.CreatedAt.Format("15:04:05"),
			nis,
			nama,
			kelas,
			sesi,
			a.Metode,
			fmt.Sprintf("%.3f", a.Confidence),
		})
	}
}

// rekapSiswa = satu baris rekap kehadiran untuk satu pendaftaran siswa-kelas.
type rekapSiswa struct {
	Nis       string
	Nama      string
	Email     string
	KodeKelas string
	NamaKelas string
	TotalSesi int64
	Hadir     int64
	Tingkat   float64
	Status    string
}

// statusKehadiran label kategori tingkat kehadiran (persen):
// >= 75 aman, >= 50 perlu perhatian, di bawah itu kritis.
func statusKehadiran(tingkat float64) string {
	switch {
	case tingkat >= 75:
		return "Baik"
	case tingkat >= 50:
		return "Berisiko"
	default:
		return "Kritis"
	}
}

// tulisCSVRekapSiswa tulis rekap kehadiran per siswa ke writer dalam format CSV.
func tulisCSVRekapSiswa(w io.Writer, baris []rekapSiswa) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	_ = cw.Write([]string{"NIS", "Nama Siswa", "Email", "Kode Kelas", "Nama Kelas", "Total Sesi", "Hadir", "Tingkat Kehadiran (%)", "Status"})

	for _, b := range baris {
		_ = cw.Write([]string{
			b.Nis,
			b.Nama,
			b.Email,
			b.KodeKelas,
			b.NamaKelas,
			strconv.FormatInt(b.TotalSesi, 10),
			strconv.FormatInt(b.Hadir, 10),
			fmt.Sprintf("%.2f", b.Tingkat),
			b.Status,
		})
	}
}
