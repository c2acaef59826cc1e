package auth

import (
	"SIPRESIS/config"
	"SIPRESIS/models"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

type LoginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func LoginHandler(c *gin.Context) {
	// 1. Validasi input
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username dan password wajib diisi."})
		return
	}

	// 2. Cari guru berdasarkan username
	var guru models.Guru
	err := models.DB.Where("username = ? AND is_active = ?", payload.Username, true).First(&guru).Error
	if err != nil {
		// Pesan sengaja disamakan dengan password salah, jangan bocorin username mana yang terdaftar
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Username atau password salah."})
		return
	}

	// 3. Cek password (bcrypt)
	if !guru.CheckPassword(payload.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Username atau password salah."})
		return
	}

	// 4. Bikin token JWT, berlaku 24 jam
	claims := config.JWTClaims{
		Username: guru.Username,
		Role:     guru.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(config.JWT_KEY)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal membuat token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login berhasil",
		"token":   tokenString,
		"guru":    guru,
	})
}

// ProfileHandler balikin data guru yang lagi login.
func ProfileHandler(c *gin.Context) {
	userData, exists := c.Get("currentUser")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sesi pengguna tidak valid"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"guru": userData.(models.Guru)})
}
