package sesi

import (
	"SIPRESIS/helper"
	"SIPRESIS/models"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type SesiPayload struct {
	KelasId     string `json:"kelas_id" binding:"required"`
	NamaSesi    string `json:"nama_sesi" binding:"required"`
	TanggalSesi string `json:"tanggal_sesi" binding:"required"` // "2006-01-02"
	JamMulai    string `json:"jam_mulai" binding:"required"`    // "15:04:05"
	JamSelesai  string `json:"jam_selesai" binding:"required"`
	Lokasi      string `json:"lokasi"`
}

func GetAllSesi(c *gin.Context) {
	var daftar []models.Sesi

	query := models.DB.Preload("Kelas").Where("is_active = ?", true).
		Order("tanggal_sesi desc, jam_mulai desc")

	if kelasId := c.Query("kelas_id"); kelasId != "" {
		query = query.Where("kelas_id = ?", kelasId)
	}

	if err := query.Find(&daftar).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil data sesi"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sesi": daftar})
}

func CreateSesi(c *gin.Context) {
	var payload SesiPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data sesi tidak valid: " + err.Error()})
		return
	}

	// Kelas harus ada dan aktif
	var kelas models.Kelas
	if err := models.DB.Where("id = ? AND is_active = ?", payload.KelasId, true).First(&kelas).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kelas tidak ditemukan"})
		return
	}

	sesi := models.Sesi{
		KelasId:     kelas.Id,
		NamaSesi:    payload.NamaSesi,
		TanggalSesi: payload.TanggalSesi,
		JamMulai:    payload.JamMulai,
		JamSelesai:  payload.JamSelesai,
		Lokasi:      payload.Lokasi,
		IsActive:    true,
	}

	if err := models.DB.Create(&sesi).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal membuat sesi"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Sesi berhasil dibuat", "sesi": sesi})
}

// MulaiAbsenHandler buka jendela absen untuk satu sesi.
func MulaiAbsenHandler(c *gin.Context) {
	var sesi models.Sesi
	if err := models.DB.Where("id = ?", c.Param("id")).First(&sesi).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sesi tidak ditemukan"})
		return
	}

	if sesi.AbsenDitutup {
		c.JSON(http.StatusConflict, gin.H{"error": "Sesi ini sudah ditutup, tidak bisa dibuka lagi."})
		return
	}
	if sesi.AbsenDibuka {
		c.JSON(http.StatusConflict, gin.H{"error": "Absen untuk sesi ini sudah dibuka."})
		return
	}

	if err := models.DB.Model(&sesi).Update("absen_dibuka", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal membuka absen"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Absen dibuka untuk sesi " + sesi.NamaSesi})
}

// TutupAbsenHandler tutup jendela absen. Setelah ini scan wajah ditolak.
func TutupAbsenHandler(c *gin.Context) {
	var sesi models.Sesi
	if err := models.DB.Where("id = ?", c.Param("id")).First(&sesi).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sesi tidak ditemukan"})
		return
	}

	if !sesi.AbsenDibuka {
		c.JSON(http.StatusConflict, gin.H{"error": "Absen untuk sesi ini belum pernah dibuka."})
		return
	}
	if sesi.AbsenDitutup {
		c.JSON(http.StatusConflict, gin.H{"error": "Absen sudah ditutup."})
		return
	}

	if err := models.DB.Model(&sesi).Update("absen_ditutup", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menutup absen"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Absen ditutup untuk sesi " + sesi.NamaSesi})
}

// susunStatusHadir gabungkan daftar pendaftaran dengan absensi sesi jadi
// daftar status per siswa. Pendaftaran tanpa relasi siswa (data rusak) dilewati.
func susunStatusHadir(pendaftaran []models.Pendaftaran, absensi []models.Absensi) ([]gin.H, int64) {
	perSiswa := make(map[string]models.Absensi, len(absensi))
	for _, a := range absensi {
		perSiswa[a.SiswaId] = a
	}

	daftar := make([]gin.H, 0, len(pendaftaran))
	hadir := int64(0)
	for _, p := range pendaftaran {
		if p.Siswa == nil {
			continue
		}

		entri := gin.H{
			"siswa_id": p.Siswa.Id,
			"nis":      p.Siswa.Nis,
			"nama":     p.Siswa.Nama,
			"hadir":    false,
		}
		if a, ok := perSiswa[p.Siswa.Id]; ok {
			hadir++
			entri["hadir"] = true
			entri["waktu_absen"] = a.CreatedAt
			entri["metode"] = a.Metode
			entri["confidence"] = a.Confidence
		}
		daftar = append(daftar, entri)
	}
	return daftar, hadir
}

// LiveMonitorHandler status kehadiran satu sesi untuk layar monitor live.
// Dashboard nge-poll endpoint ini tiap beberapa detik selama absen berjalan,
// jadi siswa yang baru scan langsung kelihatan di layar.
func LiveMonitorHandler(c *gin.Context) {
	var sesi models.Sesi
	if err := models.DB.Preload("Kelas").Where("id = ?", c.Param("id")).First(&sesi).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sesi tidak ditemukan"})
		return
	}

	var pendaftaran []models.Pendaftaran
	if err := models.DB.Preload("Siswa").
		Where("kelas_id = ? AND is_active = ?", sesi.KelasId, true).
		Find(&pendaftaran).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil data pendaftaran"})
		return
	}

	var absensi []models.Absensi
	if err := models.DB.Where("sesi_id = ?", sesi.Id).Find(&absensi).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil data absensi"})
		return
	}

	daftar, hadir := susunStatusHadir(pendaftaran, absensi)
	total := int64(len(daftar))

	c.JSON(http.StatusOK, gin.H{
		"sesi":              sesi,
		"absen_aktif":       sesi.AbsenAktif(),
		"total_terdaftar":   total,
		"hadir":             hadir,
		"belum_hadir":       total - hadir,
		"tingkat_kehadiran": helper.TingkatKehadiran(hadir, total),
		"siswa":             daftar,
		"diperbarui":        time.Now(),
	})
}
