package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Siswa struct {
	Id           string          `gorm:"primaryKey;size:36" json:"id"`
	Nis          string          `gorm:"uniqueIndex;size:20" json:"nis"`
	Nama         string          `json:"nama"`
	Email        string          `gorm:"uniqueIndex;size:100" json:"email"`
	Telepon      string          `json:"telepon"`
	TanggalLahir *string         `json:"tanggal_lahir"` // Format "2006-01-02", boleh kosong
	FotoPath     string          `json:"foto_path"`
	Encoding     json.RawMessage `gorm:"type:json" json:"-"`          // Raw JSON dari DB (vektor 128 dimensi)
	Vector       []float64       `gorm:"-" json:"encoding,omitempty"` // Helper buat coding
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Siswa) TableName() string {
	return "siswa"
}

func (s *Siswa) BeforeCreate(tx *gorm.DB) error {
	if s.Id == "" {
		s.Id = uuid.NewString()
	}
	return nil
}

// LoadVector mengisi field Vector dari kolom JSON Encoding.
// Return false kalau siswa belum punya encoding atau datanya rusak.
func (s *Siswa) LoadVector() bool {
	if len(s.Encoding) == 0 {
		return false
	}
	if err := json.Unmarshal(s.Encoding, &s.Vector); err != nil {
		return false
	}
	return len(s.Vector) > 0
}

// SetVector menyimpan vektor hasil encoding ke kolom JSON.
func (s *Siswa) SetVector(vec []float64) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	s.Encoding = raw
	s.Vector = vec
	return nil
}
