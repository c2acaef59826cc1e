package facerec

import "math"

// Kandidat pencocokan: id siswa + vektor tersimpan dari DB.
type Kandidat struct {
	Id     string
	Vector []float64
}

// MatchResult = hasil pencocokan satu probe. Ephemeral, tidak pernah disimpan
// (kecuali sebagai efek samping pencatatan absensi oleh caller).
type MatchResult struct {
	SiswaId    string  `json:"siswa_id"`
	Distance   float64 `json:"distance"`
	Confidence float64 `json:"confidence"`
}

// Rentang index yang dianggap mewakili area wajah tertentu di grid 8x8
// (baris 1-2 mata, baris 3-4 hidung, baris 5-6 mulut) beserta bobotnya.
const (
	idxMataAwal    = 8
	idxMataAkhir   = 24
	idxHidungAkhir = 40
	idxMulutAkhir  = 56

	bobotMata   = 2.0
	bobotHidung = 1.8
	bobotMulut  = 1.5
)

// WeightedDistance hitung jarak Euclidean berbobot dua vektor encoding.
// Area mata/hidung/mulut dikasih bobot ekstra. Panjang vektor beda =
// jarak tak hingga (otomatis ditolak untuk tolerance berapapun).
func WeightedDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}

	totalBobot := 0.0
	jumlah := 0.0
	for i := range a {
		bobot := 1.0
		switch {
		case i >= idxMataAwal && i < idxMataAkhir:
			bobot = bobotMata
		case i >= idxMataAkhir && i < idxHidungAkhir:
			bobot = bobotHidung
		case i >= idxHidungAkhir && i < idxMulutAkhir:
			bobot = bobotMulut
		}
		selisih := a[i] - b[i]
		jumlah += bobot * selisih * selisih
		totalBobot += bobot
	}

	return math.Sqrt(jumlah / totalBobot)
}

// Confidence ubah jarak jadi skor kepercayaan: max(0, 1 - jarak).
func Confidence(distance float64) float64 {
	if c := 1.0 - distance; c > 0 {
		return c
	}
	return 0
}

// BestMatch cari kandidat dengan jarak minimum yang KETAT di bawah tolerance.
// Seri jarak dimenangkan kandidat yang ketemu duluan (urutan iterasi).
// Return nil kalau tidak ada yang cukup dekat.
func BestMatch(probe []float64, kandidat []Kandidat, tolerance float64) *MatchResult {
	var hasil *MatchResult

	for _, k := range kandidat {
		jarak := WeightedDistance(probe, k.Vector)
		if jarak >= tolerance {
			continue
		}
		if hasil == nil || jarak < hasil.Distance {
			hasil = &MatchResult{
				SiswaId:    k.Id,
				Distance:   jarak,
				Confidence: Confidence(jarak),
			}
		}
	}

	return hasil
}
