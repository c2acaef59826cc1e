package facerec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Error recoverable: bukan kegagalan sistem, cukup dikasih pesan ke user.
var ErrNoFace = errors.New("tidak ada wajah terdeteksi di gambar")

// GrayBuffer = gambar single-channel hasil konversi grayscale.
// Nilai intensitas 0-255, disimpan row-major. Cuma hidup selama satu request.
type GrayBuffer struct {
	Pixels []uint8
	Width  int
	Height int
}

// At ambil intensitas di (x, y). Di luar batas dianggap 0 (hitam).
func (g *GrayBuffer) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	return g.Pixels[y*g.Width+x]
}

// DecodeDataURL menerima gambar base64 (boleh pakai prefix "data:image/...;base64,"
// boleh juga base64 polos) dan decode jadi image.Image.
// Format yang didukung: JPEG, PNG, GIF, BMP, WebP.
// PENTING: decoding jalan murni di server, TIDAK pakai canvas/DOM browser.
func DecodeDataURL(data string) (image.Image, error) {
	img, _, _, err := DecodeDataURLRaw(data)
	return img, err
}

// DecodeDataURLRaw seperti DecodeDataURL, tapi juga mengembalikan byte mentah
// hasil decode base64 dan nama formatnya ("jpeg", "png", ...).
// Dipakai caller yang perlu menyimpan file aslinya ke disk.
func DecodeDataURLRaw(data string) (image.Image, []byte, string, error) {
	// Buang prefix data-URL kalau ada
	if idx := strings.Index(data, ","); idx >= 0 && strings.HasPrefix(data, "data:") {
		data = data[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, nil, "", fmt.Errorf("gambar bukan base64 yang valid: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, "", fmt.Errorf("gagal decode gambar: %w", err)
	}
	return img, raw, format, nil
}

// ImageToRGBA ubah image.Image jadi buffer RGBA interleaved (4 byte per pixel).
// Ini format input untuk Grayscale di bawah.
func ImageToRGBA(img image.Image) ([]uint8, int, int) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	buf := make([]uint8, w*h*4)
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// Konversi 16-bit ke 8-bit
			buf[i] = uint8(r >> 8)
			buf[i+1] = uint8(g >> 8)
			buf[i+2] = uint8(b >> 8)
			buf[i+3] = uint8(a >> 8)
			i += 4
		}
	}
	return buf, w, h
}
