package pengaturan

import (
	"SIPRESIS/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

func GetAllPengaturan(c *gin.Context) {
	var daftar []models.Pengaturan
	if err := models.DB.Order("`key` asc").Find(&daftar).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil pengaturan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pengaturan": daftar})
}

type SimpanPayload struct {
	Key       string `json:"key" binding:"required"`
	Value     string `json:"value" binding:"required"`
	Deskripsi string `json:"deskripsi"`
}

// SimpanPengaturanHandler upsert satu key pengaturan (khusus admin).
func SimpanPengaturanHandler(c *gin.Context) {
	var payload SimpanPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Key dan value wajib diisi."})
		return
	}

	userData, _ := c.Get("currentUser")
	currentUser := userData.(models.Guru)

	row := models.Pengaturan{
		Key:       payload.Key,
		Value:     payload.Value,
		Deskripsi: payload.Deskripsi,
		UpdatedBy: currentUser.Id,
	}

	// Upsert: insert baru atau timpa yang lama
	err := models.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "deskripsi", "updated_by"}),
	}).Create(&row).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan pengaturan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pengaturan '" + payload.Key + "' disimpan", "pengaturan": row})
}
