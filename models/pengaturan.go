package models

import "time"

// Pengaturan = key-value config yang bisa diubah admin lewat API
// (misal override FACE_TOLERANCE atau ambang siswa berisiko).
type Pengaturan struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `json:"value"`
	Deskripsi string    `json:"deskripsi"`
	UpdatedBy string    `gorm:"size:36" json:"updated_by"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Pengaturan) TableName() string {
	return "pengaturan"
}
