package siswa

import (
	"SIPRESIS/facerec"
	"SIPRESIS/models"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SiswaPayload struct {
	Nis          string  `json:"nis" binding:"required"`
	Nama         string  `json:"nama" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Telepon      string  `json:"telepon"`
	TanggalLahir *string `json:"tanggal_lahir"`
}

func GetAllSiswa(c *gin.Context) {
	var daftar []models.Siswa

	query := models.DB.Where("is_active = ?", true).Order("nama asc")

	// Filter pencarian sederhana: ?q=budi
	if q := c.Query("q"); q != "" {
		query = query.Where("nama LIKE ? OR nis LIKE ?", "%"+q+"%", "%"+q+"%")
	}

	if err := query.Find(&daftar).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil data siswa"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"siswa": daftar})
}

func GetSiswa(c *gin.Context) {
	var siswa models.Siswa
	if err := models.DB.Where("id = ?", c.Param("id")).First(&siswa).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Siswa tidak ditemukan"})
		return
	}

	// Info punya encoding atau belum (vektornya sendiri ga perlu dikirim)
	c.JSON(http.StatusOK, gin.H{
		"siswa":           siswa,
		"wajah_terdaftar": len(siswa.Encoding) > 0,
	})
}

func CreateSiswa(c *gin.Context) {
	var payload SiswaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data siswa tidak valid: " + err.Error()})
		return
	}

	siswa := models.Siswa{
		Nis:          payload.Nis,
		Nama:         payload.Nama,
		Email:        payload.Email,
		Telepon:      payload.Telepon,
		TanggalLahir: payload.TanggalLahir,
		IsActive:     true,
	}

	if err := models.DB.Create(&siswa).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Gagal menyimpan siswa. NIS atau email mungkin sudah terpakai."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Siswa berhasil didaftarkan", "siswa": siswa})
}

func UpdateSiswa(c *gin.Context) {
	var siswa models.Siswa
	if err := models.DB.Where("id = ?", c.Param("id")).First(&siswa).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Siswa tidak ditemukan"})
		return
	}

	var payload SiswaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data siswa tidak valid: " + err.Error()})
		return
	}

	siswa.Nis = payload.Nis
	siswa.Nama = payload.Nama
	siswa.Email = payload.Email
	siswa.Telepon = payload.Telepon
	siswa.TanggalLahir = payload.TanggalLahir

	if err := models.DB.Save(&siswa).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memperbarui siswa"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data siswa diperbarui", "siswa": siswa})
}

// DeleteSiswa hapus siswa beserta data turunannya.
// Encoding ikut terhapus (kolomnya nempel di row siswa),
// pendaftaran dan absensi dibersihkan manual (cascade).
func DeleteSiswa(c *gin.Context) {
	id := c.Param("id")

	var siswa models.Siswa
	if err := models.DB.Where("id = ?", id).First(&siswa).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Siswa tidak ditemukan"})
		return
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("siswa_id = ?", id).Delete(&models.Absensi{}).Error; err != nil {
			return err
		}
		if err := tx.Where("siswa_id = ?", id).Delete(&models.Pendaftaran{}).Error; err != nil {
			return err
		}
		return tx.Delete(&siswa).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menghapus siswa"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Siswa dan seluruh datanya berhasil dihapus"})
}

type FotoPayload struct {
	ImageData string `json:"image_data" binding:"required"` // base64 / data-URL
}

// fotoDir folder penyimpanan foto siswa, bisa dioverride lewat env FOTO_DIR.
func fotoDir() string {
	if dir := os.Getenv("FOTO_DIR"); dir != "" {
		return dir
	}
	return "uploads/foto_siswa"
}

// ekstensiFoto nama format dari image.Decode jadi ekstensi file.
func ekstensiFoto(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "":
		return "bin"
	default:
		return format
	}
}

// simpanFotoSiswa tulis file foto asli ke disk dan balikin path-nya.
// Satu siswa satu file, upload berikutnya nimpa file lama.
func simpanFotoSiswa(dir, siswaId string, raw []byte, format string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, siswaId+"."+ekstensiFoto(format))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// UploadFotoHandler proses foto siswa jadi encoding wajah 128 dimensi.
// Encoding lama (kalau ada) DITIMPA — satu siswa satu encoding.
// File aslinya ikut disimpan biar foto bisa ditampilkan di dashboard.
func UploadFotoHandler(c *gin.Context) {
	var siswa models.Siswa
	if err := models.DB.Where("id = ?", c.Param("id")).First(&siswa).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Siswa tidak ditemukan"})
		return
	}

	var payload FotoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data foto tidak valid"})
		return
	}

	// Jalankan pipeline: decode -> grayscale -> deteksi -> encoding
	img, raw, format, err := facerec.DecodeDataURLRaw(payload.ImageData)
	if err != nil {
		// Gambar rusak = satu-satunya kondisi yang dianggap error beneran
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gambar tidak bisa diproses. Pastikan formatnya JPEG/PNG/WebP."})
		return
	}

	gray := facerec.ToGrayBuffer(img)
	region, ketemu := facerec.DetectFace(gray)
	if !ketemu {
		// Recoverable: user tinggal upload ulang foto yang lebih jelas
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Wajah tidak terdeteksi di foto. Coba foto lain dengan pencahayaan lebih baik.",
		})
		return
	}

	vektor := facerec.ExtractFeatures(gray, region)
	if err := siswa.SetVector(vektor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memproses data wajah"})
		return
	}

	// Simpan file aslinya juga. Gagal nulis file bukan alasan buang encoding,
	// cukup dicatat di log.
	fotoPath := siswa.FotoPath
	if path, err := simpanFotoSiswa(fotoDir(), siswa.Id, raw, format); err != nil {
		log.Printf("Gagal menyimpan file foto siswa %s: %v", siswa.Id, err)
	} else {
		fotoPath = path
	}

	if err := models.DB.Model(&siswa).Updates(map[string]interface{}{
		"encoding":  siswa.Encoding,
		"foto_path": fotoPath,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan data wajah"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Encoding wajah berhasil disimpan untuk " + siswa.Nama,
		"kualitas": facerec.KualitasWajah(gray, region),
		"region":   region,
	})
}

type ReencodePayload struct {
	Images map[string]string `json:"images" binding:"required"` // siswa_id -> base64
}

// ReencodeHandler proses ulang encoding banyak siswa sekaligus.
// Wajib dijalankan kalau heuristik encoder berubah: vektor lama tidak
// kompatibel dengan versi encoder baru.
// Loop sequential biasa dengan jeda tetap antar item biar DB hosting
// ga kewalahan. Bukan job queue beneran.
func ReencodeHandler(c *gin.Context) {
	var payload ReencodePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload tidak valid"})
		return
	}

	berhasil := 0
	gagal := make([]string, 0)

	for siswaId, imageData := range payload.Images {
		vektor, err := facerec.Encode(imageData)
		if err != nil {
			if errors.Is(err, facerec.ErrNoFace) {
				gagal = append(gagal, siswaId)
				continue
			}
			gagal = append(gagal, siswaId)
			log.Printf("Reencode siswa %s gagal: %v", siswaId, err)
			continue
		}

		var siswa models.Siswa
		if err := models.DB.Where("id = ?", siswaId).First(&siswa).Error; err != nil {
			gagal = append(gagal, siswaId)
			continue
		}
		if err := siswa.SetVector(vektor); err != nil {
			gagal = append(gagal, siswaId)
			continue
		}
		if err := models.DB.Model(&siswa).Update("encoding", siswa.Encoding).Error; err != nil {
			gagal = append(gagal, siswaId)
			continue
		}
		berhasil++

		// Jeda antar item
		time.Sleep(200 * time.Millisecond)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Proses encoding ulang selesai",
		"berhasil": berhasil,
		"gagal":    gagal,
	})
}
