package facerec

// KualitasWajah hitung skor kualitas [0,1] untuk region wajah yang terdeteksi.
// Gabungan ketajaman (variance Laplacian), kecerahan, dan ukuran region
// dengan bobot 0.4 / 0.3 / 0.3. Dipakai sebagai info tambahan saat upload
// foto, bukan untuk menolak foto.
func KualitasWajah(g *GrayBuffer, r FaceRegion) float64 {
	if r.Size <= 0 {
		return 0
	}

	// Ketajaman: variance dari respon Laplacian 4-tetangga
	totalLap := 0.0
	totalLapSq := 0.0
	n := 0
	for dy := 1; dy < r.Size-1; dy += 2 {
		for dx := 1; dx < r.Size-1; dx += 2 {
			x, y := r.X+dx, r.Y+dy
			lap := 4.0*float64(g.At(x, y)) -
				float64(g.At(x-1, y)) - float64(g.At(x+1, y)) -
				float64(g.At(x, y-1)) - float64(g.At(x, y+1))
			totalLap += lap
			totalLapSq += lap * lap
			n++
		}
	}
	skorTajam := 0.0
	if n > 0 {
		rata := totalLap / float64(n)
		variance := totalLapSq/float64(n) - rata*rata
		skorTajam = clamp01(variance / 1000.0)
	}

	// Kecerahan: paling bagus di tengah-tengah (0.5)
	kecerahan := windowMean(g, r.X, r.Y, r.Size) / 255.0
	skorTerang := clamp01(1.0 - absF(kecerahan-0.5)*2.0)

	// Ukuran: wajah makin besar makin bagus, normalisasi ke 100x100 px
	skorUkuran := clamp01(float64(r.Size*r.Size) / (100.0 * 100.0))

	return 0.4*skorTajam + 0.3*skorTerang + 0.3*skorUkuran
}
