package guru

import (
	"SIPRESIS/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

type GuruPayload struct {
	Nip      string `json:"nip" binding:"required"`
	Nama     string `json:"nama" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

func GetAllGuru(c *gin.Context) {
	var daftar []models.Guru
	if err := models.DB.Where("is_active = ?", true).Order("nama asc").Find(&daftar).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil data guru"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"guru": daftar})
}

func CreateGuru(c *gin.Context) {
	var payload GuruPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data guru tidak valid: " + err.Error()})
		return
	}

	role := payload.Role
	if role != "admin" {
		role = "guru" // default, jangan sampai orang bisa bikin admin tanpa sengaja
	}

	guru := models.Guru{
		Nip:      payload.Nip,
		Nama:     payload.Nama,
		Email:    payload.Email,
		Username: payload.Username,
		Role:     role,
		IsActive: true,
	}
	if err := guru.SetPassword(payload.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memproses password"})
		return
	}

	if err := models.DB.Create(&guru).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Gagal menyimpan guru. NIP, email, atau username mungkin sudah terpakai."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Akun guru berhasil dibuat", "guru": guru})
}

type UpdateGuruPayload struct {
	Nama     string `json:"nama"`
	Email    string `json:"email"`
	Password string `json:"password"` // Opsional, kosong = tidak diganti
	IsActive *bool  `json:"is_active"`
}

func UpdateGuru(c *gin.Context) {
	var guru models.Guru
	if err := models.DB.Where("id = ?", c.Param("id")).First(&guru).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Guru tidak ditemukan"})
		return
	}

	var payload UpdateGuruPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak valid"})
		return
	}

	if payload.Nama != "" {
		guru.Nama = payload.Nama
	}
	if payload.Email != "" {
		guru.Email = payload.Email
	}
	if payload.Password != "" {
		if len(payload.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password minimal 8 karakter"})
			return
		}
		if err := guru.SetPassword(payload.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memproses password"})
			return
		}
	}
	if payload.IsActive != nil {
		guru.IsActive = *payload.IsActive
	}

	if err := models.DB.Save(&guru).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memperbarui data guru"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data guru diperbarui", "guru": guru})
}

type BulkImportPayload struct {
	Guru []GuruPayload `json:"guru" binding:"required"`
}

// BulkImportHandler daftarkan banyak guru sekaligus (dari file import admin).
// Yang gagal dilewati, bukan rollback semua — hasil per item dilaporkan.
func BulkImportHandler(c *gin.Context) {
	var payload BulkImportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload import tidak valid: " + err.Error()})
		return
	}

	berhasil := 0
	gagal := make([]gin.H, 0)

	for _, item := range payload.Guru {
		guru := models.Guru{
			Nip:      item.Nip,
			Nama:     item.Nama,
			Email:    item.Email,
			Username: item.Username,
			Role:     "guru",
			IsActive: true,
		}
		if err := guru.SetPassword(item.Password); err != nil {
			gagal = append(gagal, gin.H{"username": item.Username, "alasan": "password tidak bisa diproses"})
			continue
		}
		if err := models.DB.Create(&guru).Error; err != nil {
			gagal = append(gagal, gin.H{"username": item.Username, "alasan": "duplikat NIP/email/username"})
			continue
		}
		berhasil++
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Import selesai",
		"berhasil": berhasil,
		"gagal":    gagal,
	})
}
