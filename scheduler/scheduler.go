package scheduler

import (
	"SIPRESIS/models"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Start jalanin job background pakai gocron:
//   - tiap 10 menit: tutup otomatis sesi yang jam selesainya sudah lewat
//     tapi absennya lupa ditutup guru
//   - tiap tengah malam: log rekap kehadiran harian
func Start() {
	s := gocron.NewScheduler(time.Local)

	_, err := s.Every(10).Minutes().Do(tutupSesiKadaluarsa)
	if err != nil {
		log.Printf("Gagal mendaftarkan job tutup sesi: %v", err)
	}

	_, err = s.Every(1).Day().At("00:05").Do(rekapHarian)
	if err != nil {
		log.Printf("Gagal mendaftarkan job rekap harian: %v", err)
	}

	s.StartAsync()
	log.Println("Scheduler background berjalan.")
}

// tutupSesiKadaluarsa nutup sesi yang masih kebuka padahal
// tanggal+jam selesainya sudah lewat.
func tutupSesiKadaluarsa() {
	now := time.Now()
	hariIni := now.Format("2006-01-02")
	jamSekarang := now.Format("15:04:05")

	result := models.DB.Model(&models.Sesi{}).
		Where("absen_dibuka = ? AND absen_ditutup = ?", true, false).
		Where("tanggal_sesi < ? OR (tanggal_sesi = ? AND jam_selesai < ?)", hariIni, hariIni, jamSekarang).
		Update("absen_ditutup", true)

	if result.Error != nil {
		log.Printf("Job tutup sesi error: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Scheduler: %d sesi kadaluarsa ditutup otomatis.", result.RowsAffected)
	}
}

func rekapHarian() {
	kemarin := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	var totalAbsen, viaWajah int64
	models.DB.Model(&models.Absensi{}).Where("DATE(created_at) = ?", kemarin).Count(&totalAbsen)
	models.DB.Model(&models.Absensi{}).
		Where("DATE(created_at) = ? AND metode = ?", kemarin, models.MetodeFace).
		Count(&viaWajah)

	log.Printf("Rekap %s: %d kehadiran tercatat (%d via face recognition).", kemarin, totalAbsen, viaWajah)
}
