package render

import (
	"math"
	"math/cmplx"
	"strings"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns the log amplitude of the first half of the Fourier modes
// of u(x) at frame k, the usual way to watch the KS energy cascade.
func (f *Field) Spectrum(k int) []float64 {
	slice := f.Slice(k)
	if len(slice) < 2 {
		return nil
	}
	coeffs := fft.FFTReal(slice)
	n := float64(len(slice))

	out := make([]float64, len(coeffs)/2)
	for i := range out {
		out[i] = math.Log10(cmplx.Abs(coeffs[i])/n + 1e-12)
	}
	return out
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline squeezes data into width block characters scaled to its range.
func sparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}

	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		sb.WriteRune(sparkChars[clamp(idx, 0, 7)])
	}
	return sb.String()
}
