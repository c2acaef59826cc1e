package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Guru struct {
	Id        string    `gorm:"primaryKey;size:36" json:"id"`
	Nip       string    `gorm:"uniqueIndex;size:30" json:"nip"`
	Nama      string    `json:"nama"`
	Email     string    `gorm:"uniqueIndex;size:100" json:"email"`
	Username  string    `gorm:"uniqueIndex;size:50" json:"username"`
	Password  string    `json:"-"` // Hash bcrypt, jangan pernah keluar di JSON
	Role      string    `gorm:"default:guru" json:"role"` // "admin" atau "guru"
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Guru) TableName() string {
	return "guru"
}

func (g *Guru) BeforeCreate(tx *gorm.DB) error {
	if g.Id == "" {
		g.Id = uuid.NewString()
	}
	return nil
}

// SetPassword hash password pakai bcrypt sebelum disimpan.
func (g *Guru) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	g.Password = string(hash)
	return nil
}

// CheckPassword membandingkan password login dengan hash di DB.
func (g *Guru) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(g.Password), []byte(plain)) == nil
}
