package helper

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// TingkatKehadiran hitung persentase kehadiran (0-100).
// Sesi nol = 0, jangan dibagi nol.
func TingkatKehadiran(hadir, totalSesi int64) float64 {
	if totalSesi <= 0 {
		return 0
	}
	return float64(hadir) / float64(totalSesi) * 100.0
}

// RataRata rata-rata sederhana, wrapper gonum biar konsisten satu pintu.
func RataRata(nilai []float64) float64 {
	if len(nilai) == 0 {
		return 0
	}
	return stat.Mean(nilai, nil)
}

// PrediksiKehadiranBesok prediksi jumlah kehadiran hari berikutnya pakai
// regresi linear sederhana atas jumlah kehadiran harian.
// Minimal butuh 3 titik data, di bawah itu prediksinya ngawur.
func PrediksiKehadiranBesok(harian []float64) (float64, error) {
	if len(harian) < 3 {
		return 0, errors.New("data historis tidak cukup untuk prediksi (minimal 3 hari)")
	}

	hariKe := make([]float64, len(harian))
	for i := range harian {
		hariKe[i] = float64(i)
	}

	// y = alpha + beta*x
	alpha, beta := stat.LinearRegression(hariKe, harian, nil, false)
	prediksi := alpha + beta*float64(len(harian))

	// Jumlah kehadiran ga mungkin negatif
	if prediksi < 0 {
		prediksi = 0
	}
	return prediksi, nil
}

// CosineSimilarity hitung kemiripan dua vektor (1 = identik, 0 = ortogonal).
// Disimpan sebagai metrik pembanding waktu evaluasi manual hasil encoder;
// metrik pencocokan di jalur absensi tetap WeightedDistance di package facerec.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
