package middleware

import (
	"SIPRESIS/config"
	"SIPRESIS/models"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// ParseToken validasi JWT dan balikin claims-nya.
// Dipisah dari middleware biar gampang dites tanpa butuh DB.
func ParseToken(tokenString string) (*config.JWTClaims, error) {
	claims := &config.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Tolak algoritma selain HMAC (hindari serangan alg switching)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("metode signing token tidak dikenal")
		}
		return config.JWT_KEY, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token tidak valid")
	}
	return claims, nil
}

// AuthMiddleware cek header Authorization, validasi token, lalu simpan
// data guru yang login ke context sebagai "currentUser".
// Session user EKSPLISIT lewat context, bukan state global.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Ambil token dari header "Authorization: Bearer xxx"
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token tidak ditemukan. Silakan login dulu."})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// 2. Validasi token
		claims, err := ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sesi tidak valid atau sudah kadaluarsa."})
			return
		}

		// 3. Ambil data guru dari DB (username dari claims)
		var guru models.Guru
		if err := models.DB.Where("username = ? AND is_active = ?", claims.Username, true).First(&guru).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Akun tidak ditemukan atau sudah dinonaktifkan."})
			return
		}

		// 4. Simpan ke context untuk dipakai controller
		c.Set("currentUser", guru)
		c.Next()
	}
}

// AdminOnly dipasang SETELAH AuthMiddleware. Tolak kalau bukan admin.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		userData, exists := c.Get("currentUser")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sesi pengguna tidak valid"})
			return
		}
		guru := userData.(models.Guru)
		if guru.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Khusus admin. Akses ditolak."})
			return
		}
		c.Next()
	}
}
