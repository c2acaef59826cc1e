package facerec

import "gonum.org/v1/gonum/floats"

// VectorSize = panjang tetap vektor encoding yang disimpan di DB.
// Grid 8x8 cuma menghasilkan 64 nilai + 4 fitur geometri = 68, sisanya
// di-pad nol sampai 128. Memang boros dimensi, tapi dipertahankan supaya
// kompatibel dengan encoding lama yang sudah tersimpan.
const VectorSize = 128

const gridSize = 8 // region dibagi grid 8x8 = 64 sel

// ExtractFeatures hitung vektor fitur dari region wajah.
// Per sel grid dihitung statistik mirip LBP (local binary pattern) yang
// disederhanakan, lalu ditambah 4 rasio geometri, dinormalisasi min-max,
// dan di-pad/dipotong ke tepat 128 nilai.
func ExtractFeatures(g *GrayBuffer, r FaceRegion) []float64 {
	fitur := make([]float64, 0, gridSize*gridSize+4)

	selSize := r.Size / gridSize
	if selSize < 1 {
		selSize = 1
	}

	// 64 nilai tekstur per sel
	for baris := 0; baris < gridSize; baris++ {
		for kolom := 0; kolom < gridSize; kolom++ {
			fitur = append(fitur, cellPattern(g, r.X+kolom*selSize, r.Y+baris*selSize, selSize))
		}
	}

	// 4 fitur geometri: rasio aspek, posisi relatif x/y, luas ternormalisasi
	fitur = append(fitur,
		1.0, // region selalu persegi, rasio aspek = 1
		float64(r.X)/float64(g.Width),
		float64(r.Y)/float64(g.Height),
		float64(r.Size*r.Size)/float64(g.Width*g.Height),
	)

	// Normalisasi min-max ke [0,1]
	minV := floats.Min(fitur)
	maxV := floats.Max(fitur)
	if maxV > minV {
		for i := range fitur {
			fitur[i] = (fitur[i] - minV) / (maxV - minV)
		}
	}

	// Pad nol / potong ke panjang tetap
	vektor := make([]float64, VectorSize)
	copy(vektor, fitur)
	return vektor
}

// cellPattern hitung nilai pseudo-LBP satu sel.
// Sampling grid loncat 2; tiap sampel dibandingkan dengan 4 offset tetap
// (kanan, bawah, kiri, atas) membentuk pattern 4-bit (0-15), lalu
// dirata-rata ke [0,1].
func cellPattern(g *GrayBuffer, x, y, size int) float64 {
	offsets := [4][2]int{{2, 0}, {0, 2}, {-2, 0}, {0, -2}}

	total := 0.0
	n := 0
	for dy := 0; dy < size; dy += 2 {
		for dx := 0; dx < size; dx += 2 {
			pusat := g.At(x+dx, y+dy)
			pattern := 0
			for bit, off := range offsets {
				if g.At(x+dx+off[0], y+dy+off[1]) >= pusat {
					pattern |= 1 << bit
				}
			}
			total += float64(pattern) / 15.0
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
