package main

import (
	"SIPRESIS/config"
	"SIPRESIS/controllers/absen"
	"SIPRESIS/controllers/analitik"
	"SIPRESIS/controllers/auth"
	"SIPRESIS/controllers/guru"
	"SIPRESIS/controllers/kelas"
	"SIPRESIS/controllers/pengaturan"
	"SIPRESIS/controllers/sesi"
	"SIPRESIS/controllers/siswa"
	"SIPRESIS/middleware"
	"SIPRESIS/models"
	"SIPRESIS/scheduler"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Konek database + migrasi
	models.ConnectDatabase()

	// 2. Jalankan job background (tutup sesi otomatis, rekap harian)
	scheduler.Start()

	// 3. Setup gin + CORS (dashboard frontend jalan di domain lain)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// 4. Routes
	api := r.Group("/api")

	// Publik
	api.POST("/login", auth.LoginHandler)

	// Semua di bawah ini wajib login
	aman := api.Group("")
	aman.Use(middleware.AuthMiddleware())
	{
		aman.GET("/profile", auth.ProfileHandler)

		// Siswa
		aman.GET("/siswa", siswa.GetAllSiswa)
		aman.GET("/siswa/:id", siswa.GetSiswa)
		aman.POST("/siswa", siswa.CreateSiswa)
		aman.PUT("/siswa/:id", siswa.UpdateSiswa)
		aman.POST("/siswa/:id/foto", siswa.UploadFotoHandler)

		// Kelas
		aman.GET("/kelas", kelas.GetAllKelas)
		aman.GET("/kelas/:id", kelas.GetKelas)
		aman.POST("/kelas", kelas.CreateKelas)
		aman.PUT("/kelas/:id", kelas.UpdateKelas)
		aman.POST("/kelas/:id/daftar", kelas.DaftarkanSiswaHandler)

		// Sesi
		aman.GET("/sesi", sesi.GetAllSesi)
		aman.POST("/sesi", sesi.CreateSesi)
		aman.POST("/sesi/:id/mulai", sesi.MulaiAbsenHandler)
		aman.POST("/sesi/:id/tutup", sesi.TutupAbsenHandler)
		aman.GET("/sesi/:id/live", sesi.LiveMonitorHandler)

		// Absensi
		aman.GET("/absen", absen.GetAllAbsen)
		aman.POST("/absen/scan", absen.ScanAbsensiHandler)
		aman.POST("/absen/manual", absen.ManualAbsensiHandler)
		aman.GET("/absen/riwayat/:siswaId", absen.GetRiwayatSiswa)

		// Analitik
		aman.GET("/analitik/dashboard", analitik.DashboardStatsHandler)
		aman.GET("/analitik/tren", analitik.TrenAbsensiHandler)
		aman.GET("/analitik/prediksi", analitik.PrediksiKehadiranHandler)
		aman.GET("/analitik/berisiko", analitik.SiswaBerisikoHandler)
		aman.GET("/analitik/kelas/:id", analitik.AnalitikKelasHandler)
		aman.GET("/analitik/export", analitik.ExportAbsensiCSV)
		aman.GET("/analitik/export/siswa", analitik.ExportRekapSiswaCSV)
	}

	// Khusus admin
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		admin.GET("/guru", guru.GetAllGuru)
		admin.POST("/guru", guru.CreateGuru)
		admin.PUT("/guru/:id", guru.UpdateGuru)
		admin.POST("/guru/import", guru.BulkImportHandler)

		admin.DELETE("/siswa/:id", siswa.DeleteSiswa)
		admin.POST("/wajah/reencode", siswa.ReencodeHandler)
		admin.DELETE("/kelas/:id", kelas.DeleteKelas)

		admin.GET("/pengaturan", pengaturan.GetAllPengaturan)
		admin.POST("/pengaturan", pengaturan.SimpanPengaturanHandler)
	}

	// 5. Jalankan server
	port := config.ServerPort()
	log.Println("Server berjalan di port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server gagal jalan: %v", err)
	}
}
