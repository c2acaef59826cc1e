package facerec

// FaceRegion = kotak persegi hasil deteksi, koordinat di gambar sumber.
type FaceRegion struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Size int `json:"size"`
}

// Parameter heuristik detektor.
// CATATAN: ini heuristik mainan (bukan model deteksi wajah beneran),
// hasilnya tergantung urutan scan dan tidak dijamin akurat.
const (
	minScaleFrac = 0.15 // sisi kotak minimal 15% dari dimensi terkecil
	maxScaleFrac = 0.90 // maksimal 90%
	slideStep    = 8    // langkah geser window (pixel, kasar memang)
	scoreAmbang  = 0.6  // kandidat pertama di atas ini langsung dipakai
)

// Posisi sampel fitur dalam kotak (fraksi dari sisi kotak)
const (
	mataKiriX  = 0.30
	mataKananX = 0.70
	mataY      = 0.35
	hidungX    = 0.50
	hidungY    = 0.55
	mulutX     = 0.50
	mulutY     = 0.75
)

// DetectFace scan multi-skala brute force cari region paling "mirip wajah".
// Return (region, true) untuk kandidat PERTAMA yang skornya lewat ambang —
// greedy, bukan pencarian skor global terbaik. Return (zero, false) kalau
// tidak ada kandidat yang lolos.
func DetectFace(g *GrayBuffer) (FaceRegion, bool) {
	minDim := g.Width
	if g.Height < minDim {
		minDim = g.Height
	}

	minSize := int(float64(minDim) * minScaleFrac)
	maxSize := int(float64(minDim) * maxScaleFrac)
	if minSize < 16 {
		minSize = 16
	}

	// Kenaikan ukuran kotak per iterasi (increment tetap)
	sizeStep := minDim / 20
	if sizeStep < 8 {
		sizeStep = 8
	}

	for size := minSize; size <= maxSize; size += sizeStep {
		for y := 0; y+size <= g.Height; y += slideStep {
			for x := 0; x+size <= g.Width; x += slideStep {
				if scoreWindow(g, x, y, size) > scoreAmbang {
					return FaceRegion{X: x, Y: y, Size: size}, true
				}
			}
		}
	}

	return FaceRegion{}, false
}

// scoreWindow hitung skor heuristik [0,1] untuk satu kandidat kotak.
// Komponen dan bobotnya:
//   - mata kiri lebih gelap dari sekitarnya : 0.2
//   - mata kanan lebih gelap dari sekitarnya: 0.2
//   - simetri intensitas mata kiri vs kanan : 0.2
//   - rata-rata window di band wajah 60-180 : 0.3
//   - hidung lebih terang dari mulut        : 0.1
func scoreWindow(g *GrayBuffer, x, y, size int) float64 {
	s := float64(size)

	kiri := float64(g.At(x+int(mataKiriX*s), y+int(mataY*s)))
	kanan := float64(g.At(x+int(mataKananX*s), y+int(mataY*s)))
	hidung := float64(g.At(x+int(hidungX*s), y+int(hidungY*s)))
	mulut := float64(g.At(x+int(mulutX*s), y+int(mulutY*s)))

	sekitarKiri := patchMean(g, x+int(mataKiriX*s), y+int(mataY*s), size/10)
	sekitarKanan := patchMean(g, x+int(mataKananX*s), y+int(mataY*s), size/10)

	// Mata diharapkan lebih gelap dari neighborhood-nya
	skorKiri := clamp01((sekitarKiri - kiri) / 40.0)
	skorKanan := clamp01((sekitarKanan - kanan) / 40.0)

	// Simetri: beda intensitas kedua mata kecil = bagus
	skorSimetri := clamp01(1.0 - absF(kiri-kanan)/255.0*4.0)

	// Band luminance wajah yang masuk akal
	rataWindow := windowMean(g, x, y, size)
	skorBand := 0.0
	if rataWindow > 60 && rataWindow < 180 {
		skorBand = 1.0
	}

	// Hidung biasanya kena cahaya, mulut lebih gelap
	skorHidung := clamp01((hidung - mulut) / 30.0)

	skor := 0.2*skorKiri + 0.2*skorKanan + 0.2*skorSimetri + 0.3*skorBand + 0.1*skorHidung
	return clamp01(skor)
}

// patchMean rata-rata intensitas patch kecil di sekitar (cx, cy), sampling loncat 2.
func patchMean(g *GrayBuffer, cx, cy, radius int) float64 {
	if radius < 2 {
		radius = 2
	}
	total := 0.0
	n := 0
	for dy := -radius; dy <= radius; dy += 2 {
		for dx := -radius; dx <= radius; dx += 2 {
			total += float64(g.At(cx+dx, cy+dy))
			n++
		}
	}
	return total / float64(n)
}

// windowMean rata-rata intensitas satu window, sampling loncat 4 biar cepat.
func windowMean(g *GrayBuffer, x, y, size int) float64 {
	total := 0.0
	n := 0
	for dy := 0; dy < size; dy += 4 {
		for dx := 0; dx < size; dx += 4 {
			total += float64(g.At(x+dx, y+dy))
			n++
		}
	}
	return total / float64(n)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
