package utils

import (
	"math"
	"time"
)

// WorkHours menghitung durasi kerja sebagai selisih tunggal check-out
// minus check-in dalam jam (mis. 8.5 untuk 8 jam 30 menit). Check-out
// sebelum check-in (clock skew / input manual) di-clamp ke 0, bukan
// menghasilkan durasi negatif.
func WorkHours(checkIn, checkOut time.Time) float64 {
	diff := checkOut.Sub(checkIn)
	if diff < 0 {
		return 0
	}
	return diff.Hours()
}

// Round2 membulatkan ke 2 angka desimal, dipakai untuk attendance rate
// dan durasi di laporan.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
