package models

import "testing"

func TestGuruPassword(t *testing.T) {
	var g Guru
	if err := g.SetPassword("rahasia-banget"); err != nil {
		t.Fatalf("SetPassword gagal: %v", err)
	}

	if g.Password == "rahasia-banget" {
		t.Fatal("password tersimpan plaintext, harusnya hash bcrypt")
	}
	if !g.CheckPassword("rahasia-banget") {
		t.Error("password benar ditolak")
	}
	if g.CheckPassword("salah") {
		t.Error("password salah diterima")
	}
}

func TestSiswaVector(t *testing.T) {
	var s Siswa

	// Belum ada encoding
	if s.LoadVector() {
		t.Error("siswa tanpa encoding harusnya false")
	}

	// Simpan lalu baca lagi
	asli := []float64{0.1, 0.5, 0.9}
	if err := s.SetVector(asli); err != nil {
		t.Fatalf("SetVector gagal: %v", err)
	}

	s.Vector = nil
	if !s.LoadVector() {
		t.Fatal("LoadVector gagal padahal encoding ada")
	}
	if len(s.Vector) != len(asli) {
		t.Fatalf("panjang vektor %d, mau %d", len(s.Vector), len(asli))
	}
	for i := range asli {
		if s.Vector[i] != asli[i] {
			t.Errorf("vektor[%d] = %f, mau %f", i, s.Vector[i], asli[i])
		}
	}

	// Data JSON rusak di DB jangan bikin panic
	s.Encoding = []byte("{rusak")
	if s.LoadVector() {
		t.Error("JSON rusak harusnya false")
	}
}

func TestSesiAbsenAktif(t *testing.T) {
	tests := []struct {
		nama    string
		dibuka  bool
		ditutup bool
		mau     bool
	}{
		{"belum dibuka", false, false, false},
		{"lagi buka", true, false, true},
		{"sudah ditutup", true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.nama, func(t *testing.T) {
			s := Sesi{AbsenDibuka: tt.dibuka, AbsenDitutup: tt.ditutup}
			if s.AbsenAktif() != tt.mau {
				t.Errorf("AbsenAktif() = %v, mau %v", s.AbsenAktif(), tt.mau)
			}
		})
	}
}
