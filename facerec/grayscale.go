package facerec

import (
	"image"
	"math"
)

// Grayscale ubah buffer RGBA interleaved jadi buffer intensitas single-channel.
// Rumus luminance standar: gray = 0.299*R + 0.587*G + 0.114*B, dibulatkan.
// Alpha dibuang. Fungsi murni: input sama -> output selalu sama.
func Grayscale(rgba []uint8, width, height int) []uint8 {
	gray := make([]uint8, width*height)
	for i := 0; i < width*height; i++ {
		r := float64(rgba[i*4])
		g := float64(rgba[i*4+1])
		b := float64(rgba[i*4+2])
		gray[i] = uint8(math.Round(0.299*r + 0.587*g + 0.114*b))
	}
	return gray
}

// ToGrayBuffer gabungan: image.Image -> RGBA -> grayscale.
func ToGrayBuffer(img image.Image) *GrayBuffer {
	rgba, w, h := ImageToRGBA(img)
	return &GrayBuffer{
		Pixels: Grayscale(rgba, w, h),
		Width:  w,
		Height: h,
	}
}
