package kelas

import (
	"SIPRESIS/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

type KelasPayload struct {
	KodeKelas string `json:"kode_kelas" binding:"required"`
	NamaKelas string `json:"nama_kelas" binding:"required"`
	Deskripsi string `json:"deskripsi"`
	GuruId    string `json:"guru_id" binding:"required"`
	Sks       int    `json:"sks"`
	Semester  string `json:"semester" binding:"required"`
	Tahun     int    `json:"tahun" binding:"required"`
}

func GetAllKelas(c *gin.Context) {
	var daftar []models.Kelas

	query := models.DB.Preload("Guru").Where("is_active = ?", true).Order("kode_kelas asc")

	// Guru biasa cuma lihat kelasnya sendiri, admin lihat semua
	userData, _ := c.Get("currentUser")
	currentUser := userData.(models.Guru)
	if currentUser.Role != "admin" {
		query = query.Where("guru_id = ?", currentUser.Id)
	}

	if err := query.Find(&daftar).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil data kelas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"kelas": daftar})
}

func GetKelas(c *gin.Context) {
	var kelas models.Kelas
	if err := models.DB.Preload("Guru").Where("id = ?", c.Param("id")).First(&kelas).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kelas tidak ditemukan"})
		return
	}

	// Sekalian daftar siswa terdaftar
	var pendaftaran []models.Pendaftaran
	models.DB.Preload("Siswa").Where("kelas_id = ? AND is_active = ?", kelas.Id, true).Find(&pendaftaran)

	c.JSON(http.StatusOK, gin.H{"kelas": kelas, "pendaftaran": pendaftaran})
}

func CreateKelas(c *gin.Context) {
	var payload KelasPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data kelas tidak valid: " + err.Error()})
		return
	}

	sks := payload.Sks
	if sks <= 0 {
		sks = 3
	}

	kelas := models.Kelas{
		KodeKelas: payload.KodeKelas,
		NamaKelas: payload.NamaKelas,
		Deskripsi: payload.Deskripsi,
		GuruId:    payload.GuruId,
		Sks:       sks,
		Semester:  payload.Semester,
		Tahun:     payload.Tahun,
		IsActive:  true,
	}

	if err := models.DB.Create(&kelas).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Gagal menyimpan kelas. Kode kelas mungkin sudah dipakai."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Kelas berhasil dibuat", "kelas": kelas})
}

func UpdateKelas(c *gin.Context) {
	var kelas models.Kelas
	if err := models.DB.Where("id = ?", c.Param("id")).First(&kelas).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kelas tidak ditemukan"})
		return
	}

	var payload KelasPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data kelas tidak valid: " + err.Error()})
		return
	}

	kelas.KodeKelas = payload.KodeKelas
	kelas.NamaKelas = payload.NamaKelas
	kelas.Deskripsi = payload.Deskripsi
	kelas.GuruId = payload.GuruId
	kelas.Semester = payload.Semester
	kelas.Tahun = payload.Tahun
	if payload.Sks > 0 {
		kelas.Sks = payload.Sks
	}

	if err := models.DB.Save(&kelas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memperbarui kelas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Kelas diperbarui", "kelas": kelas})
}

func DeleteKelas(c *gin.Context) {
	// Soft delete saja: data sesi & absensi lama masih dibutuhkan buat laporan
	result := models.DB.Model(&models.Kelas{}).Where("id = ?", c.Param("id")).Update("is_active", false)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menghapus kelas"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kelas tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kelas dinonaktifkan"})
}

type DaftarPayload struct {
	SiswaId string `json:"siswa_id" binding:"required"`
}

// DaftarkanSiswaHandler masukkan siswa ke kelas (enrollment).
func DaftarkanSiswaHandler(c *gin.Context) {
	kelasId := c.Param("id")

	var kelas models.Kelas
	if err := models.DB.Where("id = ? AND is_active = ?", kelasId, true).First(&kelas).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kelas tidak ditemukan"})
		return
	}

	var payload DaftarPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "siswa_id wajib diisi"})
		return
	}

	var siswa models.Siswa
	if err := models.DB.Where("id = ? AND is_active = ?", payload.SiswaId, true).First(&siswa).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Siswa tidak ditemukan"})
		return
	}

	pendaftaran := models.Pendaftaran{
		SiswaId:  siswa.Id,
		KelasId:  kelas.Id,
		IsActive: true,
	}
	if err := models.DB.Create(&pendaftaran).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": siswa.Nama + " sudah terdaftar di kelas ini."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": siswa.Nama + " berhasil didaftarkan ke " + kelas.NamaKelas})
}
