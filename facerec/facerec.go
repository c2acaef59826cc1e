// Package facerec berisi pipeline face recognition heuristik:
// decode gambar -> grayscale -> cari region wajah -> ekstrak vektor fitur ->
// cocokkan dengan vektor tersimpan.
//
// PERINGATAN: ini BUKAN teknologi biometrik produksi. Detektor dan encoder-nya
// heuristik sederhana tanpa jaminan akurasi; untuk akurasi beneran, ganti
// seluruh pipeline ini dengan model embedding yang sudah teruji dan
// pertahankan kontrak jarak/tolerance di Matcher saja.
package facerec

import "image"

// Encode jalankan pipeline lengkap dari gambar base64/data-URL sampai vektor
// 128 dimensi. Return ErrNoFace kalau tidak ada region yang lolos ambang
// (kondisi recoverable, bukan kegagalan sistem). Error lain berarti input
// gambarnya rusak.
func Encode(dataURL string) ([]float64, error) {
	img, err := DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	return EncodeImage(img)
}

// EncodeImage sama seperti Encode tapi mulai dari image.Image yang sudah
// ter-decode. Operasi murni dan satu arah: tidak ada retry, tidak ada state.
func EncodeImage(img image.Image) ([]float64, error) {
	gray := ToGrayBuffer(img)

	region, ketemu := DetectFace(gray)
	if !ketemu {
		return nil, ErrNoFace
	}

	return ExtractFeatures(gray, region), nil
}
