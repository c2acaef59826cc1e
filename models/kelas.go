package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Kelas struct {
	Id        string    `gorm:"primaryKey;size:36" json:"id"`
	KodeKelas string    `gorm:"uniqueIndex;size:20" json:"kode_kelas"`
	NamaKelas string    `json:"nama_kelas"`
	Deskripsi string    `json:"deskripsi"`
	GuruId    string    `gorm:"index;size:36" json:"guru_id"`
	Guru      *Guru     `gorm:"foreignKey:GuruId" json:"guru,omitempty"`
	Sks       int       `gorm:"default:3" json:"sks"`
	Semester  string    `gorm:"size:20" json:"semester"` // "Ganjil" / "Genap"
	Tahun     int       `json:"tahun"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Kelas) TableName() string {
	return "kelas"
}

func (k *Kelas) BeforeCreate(tx *gorm.DB) error {
	if k.Id == "" {
		k.Id = uuid.NewString()
	}
	return nil
}

// Pendaftaran = relasi siswa <-> kelas (enrollment).
// Satu siswa cuma boleh terdaftar sekali per kelas.
type Pendaftaran struct {
	Id        int64     `gorm:"primaryKey" json:"id"`
	SiswaId   string    `gorm:"uniqueIndex:idx_siswa_kelas;size:36" json:"siswa_id"`
	KelasId   string    `gorm:"uniqueIndex:idx_siswa_kelas;size:36" json:"kelas_id"`
	Siswa     *Siswa    `gorm:"foreignKey:SiswaId" json:"siswa,omitempty"`
	Kelas     *Kelas    `gorm:"foreignKey:KelasId" json:"kelas,omitempty"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Pendaftaran) TableName() string {
	return "pendaftaran"
}
