package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Sesi struct {
	Id           string    `gorm:"primaryKey;size:36" json:"id"`
	KelasId      string    `gorm:"index;size:36" json:"kelas_id"`
	Kelas        *Kelas    `gorm:"foreignKey:KelasId" json:"kelas,omitempty"`
	NamaSesi     string    `json:"nama_sesi"`
	TanggalSesi  string    `gorm:"index;size:10" json:"tanggal_sesi"` // "2006-01-02"
	JamMulai     string    `gorm:"size:8" json:"jam_mulai"`           // "15:04:05"
	JamSelesai   string    `gorm:"size:8" json:"jam_selesai"`
	Lokasi       string    `json:"lokasi"`
	AbsenDibuka  bool      `gorm:"default:false" json:"absen_dibuka"`
	AbsenDitutup bool      `gorm:"default:false" json:"absen_ditutup"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Sesi) TableName() string {
	return "sesi"
}

func (s *Sesi) BeforeCreate(tx *gorm.DB) error {
	if s.Id == "" {
		s.Id = uuid.NewString()
	}
	return nil
}

// AbsenAktif cek apakah sesi lagi menerima absen (sudah dibuka, belum ditutup).
func (s *Sesi) AbsenAktif() bool {
	return s.AbsenDibuka && !s.AbsenDitutup
}
