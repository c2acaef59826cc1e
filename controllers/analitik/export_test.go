package analitik

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"SIPRESIS/models"
)

// bukaDBKering buka koneksi gorm mode dry-run: SQL-nya dirakit tapi tidak
// pernah dieksekusi, jadi tidak butuh MySQL hidup.
func bukaDBKering(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "root:@tcp(127.0.0.1:3306)/sipresis?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("gagal buka gorm dry-run: %v", err)
	}
	return db
}

// Setelah join ke sesi, absensi dan sesi sama-sama punya kolom created_at.
// Referensi tanpa prefix tabel bikin MySQL error 1052 (ambiguous column),
// jadi semua created_at di query export wajib pakai prefix absensi.
func TestQueryExportDenganFilterKelas(t *testing.T) {
	db := bukaDBKering(t)
	awal := time.Now().AddDate(0, 0, -30)

	tx := queryExport(db, awal, "kelas-1").Find(&[]models.Absensi{})
	assert.NoError(t, tx.Error)

	sqlnya := tx.Statement.SQL.String()
	assert.Contains(t, sqlnya, "JOIN sesi ON sesi.id = absensi.sesi_id")
	assert.Contains(t, sqlnya, "sesi.kelas_id = ?")
	assert.Contains(t, sqlnya, "absensi.created_at >= ?")
	assert.Contains(t, sqlnya, "ORDER BY absensi.created_at")
	// Setiap created_at harus didahului prefix tabel
	assert.NotRegexp(t, `[^.]created_at`, sqlnya)
}

func TestQueryExportTanpaFilter(t *testing.T) {
	db := bukaDBKering(t)
	awal := time.Now().AddDate(0, 0, -7)

	tx := queryExport(db, awal, "").Find(&[]models.Absensi{})
	assert.NoError(t, tx.Error)

	sqlnya := tx.Statement.SQL.String()
	assert.NotContains(t, sqlnya, "JOIN")
	assert.Contains(t, sqlnya, "absensi.created_at >= ?")
}
