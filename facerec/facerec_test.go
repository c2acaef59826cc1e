package facerec

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

// gambarUniform bikin gambar satu warna.
func gambarUniform(w, h int, intensitas uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{intensitas, intensitas, intensitas, 255})
		}
	}
	return img
}

// gambarWajahSintetis gambar pola mirip wajah untuk region target (x, y, size):
// dua titik mata gelap, patch hidung terang, patch mulut gelap di atas
// background abu-abu. Posisi fitur pas dengan offset fraksi detektor.
func gambarWajahSintetis(w, h, rx, ry, size int, bg uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{bg, bg, bg, 255})
		}
	}

	s := float64(size)
	isiLingkaran(img, rx+int(mataKiriX*s), ry+int(mataY*s), 9, 50)
	isiLingkaran(img, rx+int(mataKananX*s), ry+int(mataY*s), 9, 50)
	isiLingkaran(img, rx+int(hidungX*s), ry+int(hidungY*s), 8, 175)
	isiLingkaran(img, rx+int(mulutX*s), ry+int(mulutY*s), 8, 95)
	return img
}

func isiLingkaran(img *image.RGBA, cx, cy, r int, v uint8) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				img.Set(cx+dx, cy+dy, color.RGBA{v, v, v, 255})
			}
		}
	}
}

func keDataURL(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("gagal encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestGrayscaleDeterministikDanIdempoten(t *testing.T) {
	rgba, w, h := ImageToRGBA(gambarWajahSintetis(80, 80, 8, 8, 64, 140))

	sekali := Grayscale(rgba, w, h)
	lagi := Grayscale(rgba, w, h)

	if len(sekali) != w*h {
		t.Fatalf("panjang buffer gray = %d, harusnya %d", len(sekali), w*h)
	}
	for i := range sekali {
		if sekali[i] != lagi[i] {
			t.Fatalf("grayscale tidak deterministik di index %d: %d vs %d", i, sekali[i], lagi[i])
		}
	}
}

func TestGrayscaleRumusLuminance(t *testing.T) {
	// Satu pixel merah murni: 0.299*255 = 76.245 -> 76
	rgba := []uint8{255, 0, 0, 255}
	gray := Grayscale(rgba, 1, 1)
	if gray[0] != 76 {
		t.Errorf("gray merah murni = %d, harusnya 76", gray[0])
	}

	// Alpha harus dibuang (dua alpha beda, hasil sama)
	transparan := []uint8{255, 0, 0, 0}
	if Grayscale(transparan, 1, 1)[0] != 76 {
		t.Error("alpha seharusnya tidak mempengaruhi hasil")
	}
}

func TestDetectFaceGambarUniformTidakKetemu(t *testing.T) {
	// Gambar polos tidak punya pola mata/hidung; skor maksimalnya
	// cuma simetri (0.2) + band (0.3) = 0.5, di bawah ambang 0.6.
	for _, intensitas := range []uint8{0, 100, 140, 255} {
		gray := ToGrayBuffer(gambarUniform(120, 120, intensitas))
		if _, ketemu := DetectFace(gray); ketemu {
			t.Errorf("gambar uniform %d seharusnya tidak terdeteksi wajah", intensitas)
		}
	}
}

func TestDetectFaceSintetisKetemu(t *testing.T) {
	gray := ToGrayBuffer(gambarWajahSintetis(160, 160, 16, 16, 96, 140))
	region, ketemu := DetectFace(gray)
	if !ketemu {
		t.Fatal("wajah sintetis seharusnya terdeteksi")
	}
	if region.Size <= 0 {
		t.Errorf("region tidak valid: %+v", region)
	}
}

func TestEncodePanjangSelalu128(t *testing.T) {
	ukuran := []struct{ w, h, rx, ry, size int }{
		{160, 160, 16, 16, 96},
		{320, 240, 24, 24, 128},
		{120, 120, 8, 8, 72},
	}
	for _, u := range ukuran {
		img := gambarWajahSintetis(u.w, u.h, u.rx, u.ry, u.size, 140)
		vektor, err := EncodeImage(img)
		if err != nil {
			t.Fatalf("encode %dx%d gagal: %v", u.w, u.h, err)
		}
		if len(vektor) != VectorSize {
			t.Errorf("panjang vektor %dx%d = %d, harusnya %d", u.w, u.h, len(vektor), VectorSize)
		}
		for i, v := range vektor {
			if v < 0 || v > 1 {
				t.Errorf("nilai vektor[%d] = %f di luar [0,1]", i, v)
			}
		}
	}
}

func TestEncodeDeterministik(t *testing.T) {
	data := keDataURL(t, gambarWajahSintetis(160, 160, 16, 16, 96, 140))

	pertama, err := Encode(data)
	if err != nil {
		t.Fatalf("encode pertama gagal: %v", err)
	}
	kedua, err := Encode(data)
	if err != nil {
		t.Fatalf("encode kedua gagal: %v", err)
	}

	for i := range pertama {
		if pertama[i] != kedua[i] {
			t.Fatalf("encoding tidak deterministik di index %d", i)
		}
	}
}

func TestEncodeGambarBedaVektorBeda(t *testing.T) {
	a, err := EncodeImage(gambarWajahSintetis(160, 160, 16, 16, 96, 140))
	if err != nil {
		t.Fatalf("encode a gagal: %v", err)
	}
	b, err := EncodeImage(gambarWajahSintetis(160, 160, 40, 40, 104, 120))
	if err != nil {
		t.Fatalf("encode b gagal: %v", err)
	}

	sama := true
	for i := range a {
		if a[i] != b[i] {
			sama = false
			break
		}
	}
	if sama {
		t.Error("dua gambar berbeda menghasilkan vektor identik")
	}
}

func TestDecodeDataURLRawBytesUtuh(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gambarUniform(32, 32, 140)); err != nil {
		t.Fatalf("gagal encode png: %v", err)
	}
	asli := buf.Bytes()
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(asli)

	img, raw, format, err := DecodeDataURLRaw(dataURL)
	if err != nil {
		t.Fatalf("decode gagal: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, mau png", format)
	}
	if !bytes.Equal(raw, asli) {
		t.Error("byte mentah berubah, harusnya sama persis dengan input")
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Errorf("dimensi gambar = %v, mau 32x32", img.Bounds())
	}
}

func TestEncodeTanpaWajah(t *testing.T) {
	_, err := Encode(keDataURL(t, gambarUniform(120, 120, 140)))
	if err != ErrNoFace {
		t.Errorf("error = %v, harusnya ErrNoFace", err)
	}
}

func TestEncodeInputRusak(t *testing.T) {
	tests := []struct {
		nama string
		data string
	}{
		{"bukan base64", "ini jelas bukan base64!!!"},
		{"base64 tapi bukan gambar", base64.StdEncoding.EncodeToString([]byte("halo dunia"))},
		{"data-url kosong", "data:image/png;base64,"},
	}
	for _, tt := range tests {
		t.Run(tt.nama, func(t *testing.T) {
			_, err := Encode(tt.data)
			if err == nil {
				t.Error("input rusak seharusnya error")
			}
			if err == ErrNoFace {
				t.Error("input rusak bukan kasus ErrNoFace")
			}
		})
	}
}

func TestWeightedDistanceRefleksif(t *testing.T) {
	vektor := make([]float64, VectorSize)
	for i := range vektor {
		vektor[i] = float64(i) / float64(VectorSize)
	}

	jarak := WeightedDistance(vektor, vektor)
	if jarak != 0 {
		t.Errorf("jarak ke diri sendiri = %f, harusnya 0", jarak)
	}
	if Confidence(jarak) != 1 {
		t.Errorf("confidence jarak 0 = %f, harusnya 1", Confidence(jarak))
	}
}

func TestWeightedDistancePanjangBeda(t *testing.T) {
	a := make([]float64, VectorSize)
	b := make([]float64, 68)

	if !math.IsInf(WeightedDistance(a, b), 1) {
		t.Error("panjang beda harusnya jarak tak hingga")
	}

	// Tak hingga = tidak pernah kepilih, tolerance berapapun
	hasil := BestMatch(a, []Kandidat{{Id: "x", Vector: b}}, 1e9)
	if hasil != nil {
		t.Error("kandidat dengan panjang beda tidak boleh kepilih")
	}
}

func TestBestMatchAmbilTerdekat(t *testing.T) {
	probe := make([]float64, VectorSize)

	dekat := make([]float64, VectorSize)
	jauh := make([]float64, VectorSize)
	for i := range jauh {
		dekat[i] = 0.01
		jauh[i] = 0.3
	}

	hasil := BestMatch(probe, []Kandidat{
		{Id: "jauh", Vector: jauh},
		{Id: "dekat", Vector: dekat},
	}, 0.6)

	if hasil == nil {
		t.Fatal("harusnya ada yang cocok")
	}
	if hasil.SiswaId != "dekat" {
		t.Errorf("match = %s, harusnya 'dekat'", hasil.SiswaId)
	}
	if hasil.Confidence <= 0 || hasil.Confidence > 1 {
		t.Errorf("confidence %f di luar (0,1]", hasil.Confidence)
	}
}

func TestBestMatchSeriMenangDuluan(t *testing.T) {
	probe := make([]float64, VectorSize)
	kembar := make([]float64, VectorSize)
	for i := range kembar {
		kembar[i] = 0.1
	}

	hasil := BestMatch(probe, []Kandidat{
		{Id: "pertama", Vector: kembar},
		{Id: "kedua", Vector: kembar},
	}, 0.6)

	if hasil == nil || hasil.SiswaId != "pertama" {
		t.Errorf("seri jarak harusnya dimenangkan kandidat pertama, dapat %+v", hasil)
	}
}

func TestToleranceMonotonik(t *testing.T) {
	// Naikin tolerance tidak boleh mengurangi jumlah kandidat yang diterima
	probe := make([]float64, VectorSize)
	kandidat := make([]Kandidat, 0)
	for i := 0; i < 10; i++ {
		v := make([]float64, VectorSize)
		for j := range v {
			v[j] = float64(i) * 0.05
		}
		kandidat = append(kandidat, Kandidat{Id: string(rune('a' + i)), Vector: v})
	}

	hitungDiterima := func(tolerance float64) int {
		n := 0
		for _, k := range kandidat {
			if WeightedDistance(probe, k.Vector) < tolerance {
				n++
			}
		}
		return n
	}

	sebelumnya := -1
	for _, tol := range []float64{0.1, 0.2, 0.4, 0.6, 0.9, 2.0} {
		diterima := hitungDiterima(tol)
		if diterima < sebelumnya {
			t.Errorf("tolerance %f menerima %d kandidat, lebih sedikit dari sebelumnya (%d)", tol, diterima, sebelumnya)
		}
		sebelumnya = diterima
	}
}

func TestKualitasWajahRentang(t *testing.T) {
	gray := ToGrayBuffer(gambarWajahSintetis(160, 160, 16, 16, 96, 140))
	skor := KualitasWajah(gray, FaceRegion{X: 16, Y: 16, Size: 96})
	if skor < 0 || skor > 1 {
		t.Errorf("skor kualitas %f di luar [0,1]", skor)
	}

	if KualitasWajah(gray, FaceRegion{}) != 0 {
		t.Error("region kosong harusnya skor 0")
	}
}
