package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Metode pencatatan absensi
const (
	MetodeFace   = "Face Recog"
	MetodeManual = "Manual"
)

type Absensi struct {
	Id          string    `gorm:"primaryKey;size:36" json:"id"`
	SiswaId     string    `gorm:"uniqueIndex:idx_siswa_sesi;size:36" json:"siswa_id"`
	SesiId      string    `gorm:"uniqueIndex:idx_siswa_sesi;size:36" json:"sesi_id"`
	Siswa       *Siswa    `gorm:"foreignKey:SiswaId" json:"siswa,omitempty"`
	Sesi        *Sesi     `gorm:"foreignKey:SesiId" json:"sesi,omitempty"`
	Confidence  float64   `json:"confidence"` // Skor kecocokan wajah (0 kalau manual)
	Metode      string    `gorm:"size:20" json:"metode"`
	DicatatOleh *string   `gorm:"size:36" json:"dicatat_oleh"` // Id guru, nullable (nil = otomatis)
	Catatan     string    `json:"catatan"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Absensi) TableName() string {
	return "absensi"
}

func (a *Absensi) BeforeCreate(tx *gorm.DB) error {
	if a.Id == "" {
		a.Id = uuid.NewString()
	}
	return nil
}
