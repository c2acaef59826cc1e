package analitik

import (
	"SIPRESIS/helper"
	"SIPRESIS/models"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardStatsHandler = angka-angka ringkasan untuk halaman depan dashboard.
func DashboardStatsHandler(c *gin.Context) {
	var totalSiswa, totalKelas, sesiAktif, absenHariIni int64

	models.DB.Model(&models.Siswa{}).Where("is_active = ?", true).Count(&totalSiswa)
	models.DB.Model(&models.Kelas{}).Where("is_active = ?", true).Count(&totalKelas)
	models.DB.Model(&models.Sesi{}).Where("absen_dibuka = ? AND absen_ditutup = ?", true, false).Count(&sesiAktif)

	hariIni := time.Now().Format("2006-01-02")
	models.DB.Model(&models.Absensi{}).Where("DATE(created_at) = ?", hariIni).Count(&absenHariIni)

	// Berapa siswa yang sudah daftar wajah
	var wajahTerdaftar int64
	models.DB.Model(&models.Siswa{}).Where("is_active = ? AND encoding IS NOT NULL", true).Count(&wajahTerdaftar)

	c.JSON(http.StatusOK, gin.H{
		"total_siswa":     totalSiswa,
		"total_kelas":     totalKelas,
		"sesi_aktif":      sesiAktif,
		"absen_hari_ini":  absenHariIni,
		"wajah_terdaftar": wajahTerdaftar,
	})
}

type trenHarian struct {
	Tanggal string `json:"tanggal"`
	Jumlah  int64  `json:"jumlah"`
}

type trenKelas struct {
	KodeKelas string `json:"kode_kelas"`
	NamaKelas string `json:"nama_kelas"`
	Jumlah    int64  `json:"jumlah"`
	SiswaUnik int64  `json:"siswa_unik"`
}

// TrenAbsensiHandler = tren kehadiran harian/mingguan + breakdown per kelas.
// Default 30 hari terakhir, bisa difilter ?hari=N dan ?kelas_id=...
func TrenAbsensiHandler(c *gin.Context) {
	jumlahHari := 30
	if raw := c.Query("hari"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 365 {
			jumlahHari = n
		}
	}

	akhir := time.Now()
	awal := akhir.AddDate(0, 0, -jumlahHari)
	kelasId := c.Query("kelas_id")

	// Query builder dipakai berulang, pakai closure biar kondisinya ga numpuk
	baseQuery := func() *gorm.DB {
		q := models.DB.Model(&models.Absensi{}).Where("absensi.created_at >= ?", awal)
		if kelasId != "" {
			q = q.Joins("JOIN sesi ON sesi.id = absensi.sesi_id").
				Where("sesi.kelas_id = ?", kelasId)
		}
		return q
	}

	// Hitungan per hari
	var harian []trenHarian
	baseQuery().
		Select("DATE(absensi.created_at) as tanggal, COUNT(*) as jumlah").
		Group("DATE(absensi.created_at)").
		Order("tanggal asc").
		Scan(&harian)

	// Agregasi per minggu dari data harian (7 hari per bucket)
	mingguan := agregasiMingguan(harian)

	// Breakdown per kelas
	var perKelas []trenKelas
	models.DB.Model(&models.Absensi{}).
		Select("kelas.kode_kelas, kelas.nama_kelas, COUNT(*) as jumlah, COUNT(DISTINCT absensi.siswa_id) as siswa_unik").
		Joins("JOIN sesi ON sesi.id = absensi.sesi_id").
		Joins("JOIN kelas ON kelas.id = sesi.kelas_id").
		Where("absensi.created_at >= ?", awal).
		Group("kelas.id").
		Order("jumlah desc").
		Scan(&perKelas)

	var total int64
	baseQuery().Count(&total)

	c.JSON(http.StatusOK, gin.H{
		"periode":   gin.H{"awal": awal.Format("2006-01-02"), "akhir": akhir.Format("2006-01-02")},
		"harian":    harian,
		"mingguan":  mingguan,
		"per_kelas": perKelas,
		"total":     total,
	})
}

// PrediksiKehadiranHandler prediksi jumlah kehadiran besok dari tren harian
// (regresi linear, minimal 3 hari data).
func PrediksiKehadiranHandler(c *gin.Context) {
	awal := time.Now().AddDate(0, 0, -14)

	var harian []trenHarian
	models.DB.Model(&models.Absensi{}).
		Select("DATE(created_at) as tanggal, COUNT(*) as jumlah").
		Where("created_at >= ?", awal).
		Group("DATE(created_at)").
		Order("tanggal asc").
		Scan(&harian)

	nilai := make([]float64, len(harian))
	for i, h := range harian {
		nilai[i] = float64(h.Jumlah)
	}

	prediksi, err := helper.PrediksiKehadiranBesok(nilai)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"prediction_available": false,
			"message":              err.Error(),
			"jumlah_data":          len(nilai),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction_available": true,
		"prediksi_besok":       prediksi,
		"rata_rata_harian":     helper.RataRata(nilai),
		"jumlah_data":          len(nilai),
	})
}

type siswaBerisiko struct {
	Siswa        models.Siswa `json:"siswa"`
	Kelas        models.Kelas `json:"kelas"`
	TotalSesi    int64        `json:"total_sesi"`
	Hadir        int64        `json:"hadir"`
	TingkatHadir float64      `json:"tingkat_kehadiran"`
}

// SiswaBerisikoHandler cari siswa dengan tingkat kehadiran di bawah ambang
// (default 75%). Dihitung per pendaftaran kelas, sesi yang dihitung cuma
// yang absennya sudah ditutup.
func SiswaBerisikoHandler(c *gin.Context) {
	ambang := 75.0
	if raw := c.Query("ambang"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 && v <= 100 {
			ambang = v
		}
	}

	var pendaftaran []models.Pendaftaran
	if err := models.DB.Preload("Siswa").Preload("Kelas").
		Where("is_active = ?", true).Find(&pendaftaran).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil data pendaftaran"})
		return
	}

	berisiko := make([]siswaBerisiko, 0)
	for _, p := range pendaftaran {
		if p.Siswa == nil || p.Kelas == nil {
			continue
		}

		var totalSesi int64
		models.DB.Model(&models.Sesi{}).
			Where("kelas_id = ? AND absen_ditutup = ?", p.KelasId, true).
			Count(&totalSesi)
		if totalSesi == 0 {
			continue // Belum ada sesi selesai, belum bisa dinilai
		}

		var hadir int64
		models.DB.Model(&models.Absensi{}).
			Joins("JOIN sesi ON sesi.id = absensi.sesi_id").
			Where("absensi.siswa_id = ? AND sesi.kelas_id = ?", p.SiswaId, p.KelasId).
			Count(&hadir)

		tingkat := helper.TingkatKehadiran(hadir, totalSesi)
		if tingkat < ambang {
			berisiko = append(berisiko, siswaBerisiko{
				Siswa:        *p.Siswa,
				Kelas:        *p.Kelas,
				TotalSesi:    totalSesi,
				Hadir:        hadir,
				TingkatHadir: tingkat,
			})
		}
	}

	// Yang paling parah di atas
	sort.Slice(berisiko, func(i, j int) bool {
		return berisiko[i].TingkatHadir < berisiko[j].TingkatHadir
	})

	c.JSON(http.StatusOK, gin.H{"ambang": ambang, "siswa_berisiko": berisiko})
}

// AnalitikKelasHandler statistik satu kelas: tingkat kehadiran rata-rata,
// jumlah sesi, kehadiran per sesi.
func AnalitikKelasHandler(c *gin.Context) {
	kelasId := c.Param("id")

	var kelas models.Kelas
	if err := models.DB.Preload("Guru").Where("id = ?", kelasId).First(&kelas).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kelas tidak ditemukan"})
		return
	}

	var totalSiswa int64
	models.DB.Model(&models.Pendaftaran{}).
		Where("kelas_id = ? AND is_active = ?", kelasId, true).Count(&totalSiswa)

	var sesiSelesai []models.Sesi
	models.DB.Where("kelas_id = ? AND absen_ditutup = ?", kelasId, true).
		Order("tanggal_sesi asc").Find(&sesiSelesai)

	perSesi := make([]gin.H, 0, len(sesiSelesai))
	tingkatSemua := make([]float64, 0, len(sesiSelesai))
	for _, s := range sesiSelesai {
		var hadir int64
		models.DB.Model(&models.Absensi{}).Where("sesi_id = ?", s.Id).Count(&hadir)

		tingkat := helper.TingkatKehadiran(hadir, totalSiswa)
		tingkatSemua = append(tingkatSemua, tingkat)
		perSesi = append(perSesi, gin.H{
			"sesi":              gin.H{"id": s.Id, "nama": s.NamaSesi, "tanggal": s.TanggalSesi},
			"hadir":             hadir,
			"tingkat_kehadiran": tingkat,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"kelas":                  kelas,
		"total_siswa":            totalSiswa,
		"jumlah_sesi_selesai":    len(sesiSelesai),
		"rata_tingkat_kehadiran": helper.RataRata(tingkatSemua),
		"per_sesi":               perSesi,
	})
}

// queryExport rakit query laporan absensi. Kolom created_at WAJIB pakai
// prefix tabel: setelah join ke sesi ada dua kolom created_at dan MySQL
// menolak referensi yang ambigu.
func queryExport(db *gorm.DB, awal time.Time, kelasId string) *gorm.DB {
	q := db.Model(&models.Absensi{}).
		Preload("Siswa").Preload("Sesi").Preload("Sesi.Kelas").
		Where("absensi.created_at >= ?", awal).
		Order("absensi.created_at asc")
	if kelasId != "" {
		q = q.Joins("JOIN sesi ON sesi.id = absensi.sesi_id").
			Where("sesi.kelas_id = ?", kelasId)
	}
	return q
}

// ExportAbsensiCSV download laporan absensi sebagai file CSV.
// Filter opsional: ?kelas_id=... dan ?hari=N (default 30).
func ExportAbsensiCSV(c *gin.Context) {
	jumlahHari := 30
	if raw := c.Query("hari"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			jumlahHari = n
		}
	}
	awal := time.Now().AddDate(0, 0, -jumlahHari)

	var absensi []models.Absensi
	if err := queryExport(models.DB, awal, c.Query("kelas_id")).Find(&absensi).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil data absensi"})
		return
	}

	namaFile := fmt.Sprintf("laporan_absensi_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+namaFile+`"`)

	tulisCSVAbsensi(c.Writer, absensi)
}

// ExportRekapSiswaCSV download rekap kehadiran per siswa sebagai file CSV.
// Satu baris per pendaftaran (siswa x kelas), lengkap dengan label status.
// Filter opsional: ?kelas_id=...
func ExportRekapSiswaCSV(c *gin.Context) {
	query := models.DB.Preload("Siswa").Preload("Kelas").Where("is_active = ?", true)
	if kelasId := c.Query("kelas_id"); kelasId != "" {
		query = query.Where("kelas_id = ?", kelasId)
	}

	var pendaftaran []models.Pendaftaran
	if err := query.Find(&pendaftaran).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil data pendaftaran"})
		return
	}

	baris := make([]rekapSiswa, 0, len(pendaftaran))
	for _, p := range pendaftaran {
		if p.Siswa == nil || p.Kelas == nil {
			continue
		}

		// Sama seperti SiswaBerisikoHandler: cuma sesi yang sudah ditutup
		// yang dihitung sebagai kewajiban hadir
		var totalSesi int64
		models.DB.Model(&models.Sesi{}).
			Where("kelas_id = ? AND absen_ditutup = ?", p.KelasId, true).
			Count(&totalSesi)

		var hadir int64
		models.DB.Model(&models.Absensi{}).
			Joins("JOIN sesi ON sesi.id = absensi.sesi_id").
			Where("absensi.siswa_id = ? AND sesi.kelas_id = ?", p.SiswaId, p.KelasId).
			Count(&hadir)

		tingkat := helper.TingkatKehadiran(hadir, totalSesi)
		baris = append(baris, rekapSiswa{
			Nis:       p.Siswa.Nis,
			Nama:      p.Siswa.Nama,
			Email:     p.Siswa.Email,
			KodeKelas: p.Kelas.KodeKelas,
			NamaKelas: p.Kelas.NamaKelas,
			TotalSesi: totalSesi,
			Hadir:     hadir,
			Tingkat:   tingkat,
			Status:    statusKehadiran(tingkat),
		})
	}

	namaFile := fmt.Sprintf("rekap_siswa_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+namaFile+`"`)

	tulisCSVRekapSiswa(c.Writer, baris)
}

func agregasiMingguan(harian []trenHarian) []gin.H {
	mingguan := make([]gin.H, 0)
	for i := 0; i < len(harian); i += 7 {
		akhir := i + 7
		if akhir > len(harian) {
			akhir = len(harian)
		}
		total := int64(0)
		for _, h := range harian[i:akhir] {
			total += h.Jumlah
		}
		mingguan = append(mingguan, gin.H{
			"minggu_mulai": harian[i].Tanggal,
			"jumlah":       total,
		})
	}
	return mingguan
}
