package siswa

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEkstensiFoto(t *testing.T) {
	kasus := []struct {
		format string
		mau    string
	}{
		{"jpeg", "jpg"},
		{"png", "png"},
		{"webp", "webp"},
		{"bmp", "bmp"},
		{"", "bin"},
	}
	for _, k := range kasus {
		assert.Equal(t, k.mau, ekstensiFoto(k.format), "format %q", k.format)
	}
}

func TestSimpanFotoSiswa(t *testing.T) {
	dir := t.TempDir()
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x01, 0x02, 0x03}

	path, err := simpanFotoSiswa(dir, "siswa-123", raw, "png")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "siswa-123.png"), path)

	isi, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, raw, isi)

	// Upload kedua nimpa file lama, bukan bikin file baru
	rawBaru := []byte{0xff, 0xd8, 0xff}
	path2, err := simpanFotoSiswa(dir, "siswa-123", rawBaru, "png")
	assert.NoError(t, err)
	assert.Equal(t, path, path2)

	isi, err = os.ReadFile(path2)
	assert.NoError(t, err)
	assert.Equal(t, rawBaru, isi)
}

func TestSimpanFotoSiswaBikinFolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "foto_siswa")

	path, err := simpanFotoSiswa(dir, "siswa-456", []byte("data"), "jpeg")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "siswa-456.jpg"), path)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
