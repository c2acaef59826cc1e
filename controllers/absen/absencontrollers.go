package absen

import (
	"SIPRESIS/config"
	"SIPRESIS/facerec"
	"SIPRESIS/models"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetAllAbsen(c *gin.Context) {
	var absensi []models.Absensi

	query := models.DB.Preload("Siswa").Preload("Sesi").Order("created_at desc").Limit(50)
	if sesiId := c.Query("sesi_id"); sesiId != "" {
		query = query.Where("sesi_id = ?", sesiId)
	}

	if err := query.Find(&absensi).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"absen": absensi})
}

type ScanPayload struct {
	SesiId    string `json:"sesi_id" binding:"required"`
	ImageData string `json:"image_data" binding:"required"` // base64 / data-URL dari kamera
}

// ScanAbsensiHandler = jalur utama absen via wajah.
// Alur: validasi sesi -> encode gambar probe -> cocokkan dengan encoding
// siswa terdaftar di kelas -> catat absensi.
// "Wajah tidak ketemu" dan "tidak ada yang cocok" itu hasil normal
// (user tinggal coba lagi), BUKAN error server.
func ScanAbsensiHandler(c *gin.Context) {
	// 1. Bind JSON dari kamera dashboard
	var payload ScanPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Input tidak valid: " + err.Error()})
		return
	}

	// 2. Validasi sesi: harus ada dan jendela absennya lagi terbuka
	var sesi models.Sesi
	if err := models.DB.Where("id = ?", payload.SesiId).First(&sesi).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sesi tidak ditemukan."})
		return
	}
	if !sesi.AbsenAktif() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Absen untuk sesi ini belum dibuka atau sudah ditutup."})
		return
	}

	// =========================================================
	// PIPELINE WAJAH: decode -> grayscale -> deteksi -> encoding
	// =========================================================

	probe, err := facerec.Encode(payload.ImageData)
	if err != nil {
		if err == facerec.ErrNoFace {
			// Recoverable: kamera tinggal kirim frame berikutnya
			c.JSON(http.StatusOK, gin.H{
				"matched": false,
				"message": "Wajah tidak terdeteksi. Posisikan wajah di depan kamera.",
			})
			return
		}
		// Gambar rusak = error beneran
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gambar tidak bisa diproses."})
		return
	}

	// 3. Ambil SEMUA siswa terdaftar di kelas ini yang sudah punya encoding
	var pendaftaran []models.Pendaftaran
	err = models.DB.Preload("Siswa").
		Where("kelas_id = ? AND is_active = ?", sesi.KelasId, true).
		Find(&pendaftaran).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil data siswa."})
		return
	}

	kandidat := make([]facerec.Kandidat, 0, len(pendaftaran))
	for _, p := range pendaftaran {
		if p.Siswa == nil || !p.Siswa.LoadVector() {
			continue // Siswa belum daftar wajah / data JSON rusak, skip
		}
		kandidat = append(kandidat, facerec.Kandidat{Id: p.Siswa.Id, Vector: p.Siswa.Vector})
	}

	if len(kandidat) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"matched": false,
			"message": "Belum ada siswa di kelas ini yang mendaftarkan wajah.",
		})
		return
	}

	// 4. Cari kecocokan terdekat di bawah tolerance
	hasil := facerec.BestMatch(probe, kandidat, toleranceAktif())
	if hasil == nil {
		c.JSON(http.StatusOK, gin.H{
			"matched": false,
			"message": "Wajah tidak dikenali. Coba lagi atau hubungi guru untuk absen manual.",
		})
		return
	}

	var siswa models.Siswa
	if err := models.DB.Where("id = ?", hasil.SiswaId).First(&siswa).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Data siswa tidak ditemukan."})
		return
	}

	// 5. Catat absensi. Satu siswa satu record per sesi.
	var sudahAda models.Absensi
	err = models.DB.Where("siswa_id = ? AND sesi_id = ?", siswa.Id, sesi.Id).First(&sudahAda).Error

	switch err {
	case gorm.ErrRecordNotFound:
		baru := models.Absensi{
			SiswaId:    siswa.Id,
			SesiId:     sesi.Id,
			Confidence: hasil.Confidence,
			Metode:     models.MetodeFace,
		}
		if err := models.DB.Create(&baru).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan absensi"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"matched": true,
			"message": fmt.Sprintf("Kehadiran %s tercatat (confidence %.0f%%)", siswa.Nama, hasil.Confidence*100),
			"siswa":   gin.H{"id": siswa.Id, "nis": siswa.Nis, "nama": siswa.Nama},
			"hasil":   hasil,
		})

	case nil:
		// Siswa sudah absen di sesi ini
		c.JSON(http.StatusConflict, gin.H{
			"matched": true,
			"error":   siswa.Nama + " sudah tercatat hadir di sesi ini.",
		})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi masalah pada server: " + err.Error()})
	}
}

type ManualPayload struct {
	SesiId  string `json:"sesi_id" binding:"required"`
	SiswaId string `json:"siswa_id" binding:"required"`
	Catatan string `json:"catatan"`
}

// ManualAbsensiHandler = jalur cadangan kalau wajah tidak dikenali.
// Dicatat siapa guru yang menginput.
func ManualAbsensiHandler(c *gin.Context) {
	var payload ManualPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Input tidak valid: " + err.Error()})
		return
	}

	userData, exists := c.Get("currentUser")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sesi pengguna tidak valid"})
		return
	}
	currentUser := userData.(models.Guru)

	var sesi models.Sesi
	if err := models.DB.Where("id = ?", payload.SesiId).First(&sesi).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sesi tidak ditemukan."})
		return
	}

	var siswa models.Siswa
	if err := models.DB.Where("id = ?", payload.SiswaId).First(&siswa).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Siswa tidak ditemukan."})
		return
	}

	// Siswa harus terdaftar di kelasnya sesi
	var p models.Pendaftaran
	err := models.DB.Where("siswa_id = ? AND kelas_id = ? AND is_active = ?",
		siswa.Id, sesi.KelasId, true).First(&p).Error
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": siswa.Nama + " tidak terdaftar di kelas ini."})
		return
	}

	absensi := models.Absensi{
		SiswaId:     siswa.Id,
		SesiId:      sesi.Id,
		Confidence:  0,
		Metode:      models.MetodeManual,
		DicatatOleh: &currentUser.Id,
		Catatan:     payload.Catatan,
	}
	if err := models.DB.Create(&absensi).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": siswa.Nama + " sudah tercatat hadir di sesi ini."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Kehadiran " + siswa.Nama + " dicatat manual oleh " + currentUser.Nama})
}

func GetRiwayatSiswa(c *gin.Context) {
	var riwayat []models.Absensi
	err := models.DB.Preload("Sesi").Preload("Sesi.Kelas").
		Where("siswa_id = ?", c.Param("siswaId")).
		Order("created_at desc").
		Find(&riwayat).Error

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil riwayat absensi"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"riwayat": riwayat})
}

// toleranceAktif: override dari tabel pengaturan kalau ada, kalau ga ada
// pakai environment/default.
func toleranceAktif() float64 {
	var row models.Pengaturan
	if err := models.DB.Where("`key` = ?", "face_tolerance").First(&row).Error; err == nil {
		if tol, err := strconv.ParseFloat(row.Value, 64); err == nil && tol > 0 {
			return tol
		}
	}
	return config.FaceTolerance()
}
