package config

import (
	"log"
	"os"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

// Variable global untuk menyimpan key agar bisa diakses di controller/middleware
var JWT_KEY []byte

// Struct untuk data yang disimpan di dalam Token
type JWTClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"` // "admin" atau "guru"
	jwt.RegisteredClaims
}

// Fungsi init berjalan otomatis saat aplikasi start
func init() {
	// 1. Coba load file .env (Khusus untuk Local Development di Laptop)
	// Di server hosting file ini biasanya tidak ada (masuk .gitignore), jadi akan error.
	// Kita abaikan error-nya, supaya aplikasi tidak mati.
	err := godotenv.Load()
	if err != nil {
		log.Println("Info: File .env tidak ditemukan. Menggunakan System Environment Variable (Mode Produksi).")
	}

	// 2. Ambil key dari Environment
	key := os.Getenv("JWT_KEY")

	// 3. Validasi Keamanan
	// Jika key tetap kosong (kelupaan setting), matikan aplikasi demi keamanan.
	if key == "" {
		log.Fatal("FATAL ERROR: JWT_KEY tidak ditemukan di environment variable! Pastikan sudah diset di .env atau panel hosting.")
	}

	// 4. Simpan ke variable global sebagai byte slice
	JWT_KEY = []byte(key)
}

// FaceTolerance membaca ambang batas pencocokan wajah dari environment.
// Default 0.6 (makin kecil makin ketat).
func FaceTolerance() float64 {
	raw := os.Getenv("FACE_TOLERANCE")
	if raw == "" {
		return 0.6
	}
	tol, err := strconv.ParseFloat(raw, 64)
	if err != nil || tol <= 0 {
		log.Printf("Peringatan: FACE_TOLERANCE '%s' tidak valid, pakai default 0.6", raw)
		return 0.6
	}
	return tol
}

// ServerPort membaca port HTTP. Hosting biasanya inject lewat variable PORT.
func ServerPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		return "8080"
	}
	return port
}
