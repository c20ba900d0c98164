package spectral

import "math"

// CurveSummary are scene-level descriptors of the mean spectrum: the
// red-edge slope, area under the curve and the characteristic regional
// peaks of a vegetation signature.
type CurveSummary struct {
	MeanSpectrum   []float64
	SpectrumMean   float64
	SpectrumStd    float64
	SpectrumMin    float64
	SpectrumMax    float64
	RedEdgeSlope   float64
	AreaUnderCurve float64
	BluePeak       float64
	GreenPeak      float64
	RedAbsorption  float64
	NIRPeak        float64
}

// SummarizeCurve reduces a mean spectrum to its shape descriptors. Band
// ranges are derived from the actual band count, so short axes never index
// out of bounds.
func SummarizeCurve(meanSpectrum, wavelengths []float64) CurveSummary {
	summary := CurveSummary{MeanSpectrum: meanSpectrum}
	n := len(meanSpectrum)
	if n == 0 {
		return summary
	}

	sum := 0.0
	summary.SpectrumMin = meanSpectrum[0]
	summary.SpectrumMax = meanSpectrum[0]
	for _, v := range meanSpectrum {
		sum += v
		if v < summary.SpectrumMin {
			summary.SpectrumMin = v
		}
		if v > summary.SpectrumMax {
			summary.SpectrumMax = v
		}
	}
	summary.SpectrumMean = sum / float64(n)
	variance := 0.0
	for _, v := range meanSpectrum {
		d := v - summary.SpectrumMean
		variance += d * d
	}
	if n > 1 {
		variance /= float64(n)
	}
	summary.SpectrumStd = math.Sqrt(variance)

	summary.RedEdgeSlope = redEdgeSlope(meanSpectrum, wavelengths)
	summary.AreaUnderCurve = trapezoid(meanSpectrum)

	// Regional peaks over proportional quarters of the axis: blue, green,
	// red absorption, NIR.
	quarter := n / 4
	summary.BluePeak = sliceMax(meanSpectrum[:maxInt(quarter, 1)])
	summary.GreenPeak = sliceMax(meanSpectrum[minInt(quarter, n-1):minInt(2*quarter+1, n)])
	summary.RedAbsorption = sliceMin(meanSpectrum[minInt(2*quarter, n-1):minInt(3*quarter+1, n)])
	summary.NIRPeak = sliceMax(meanSpectrum[minInt(3*quarter, n-1):])

	return summary
}

// redEdgeSlope fits a least-squares line over the 700-750nm bands. When the
// axis is missing or the window collapses, a proportional window standing in
// for the same region of the canonical grid is used instead.
func redEdgeSlope(spectrum, wavelengths []float64) float64 {
	n := len(spectrum)
	var start, end int
	if len(wavelengths) == n && n > 1 {
		start, _ = NearestBand(wavelengths, 700)
		end, _ = NearestBand(wavelengths, 750)
		end++
	}
	if end-start < 2 {
		// canonical grid: 700-750nm sits at band fractions 1/2 .. 7/12
		start = n / 2
		end = n * 7 / 12
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if end-start < 2 {
		return 0
	}
	return linearSlope(spectrum[start:end])
}

// linearSlope is the least-squares slope of y over x = 0..len-1.
func linearSlope(y []float64) float64 {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denominator
}

// trapezoid integrates the spectrum over the band axis (unit spacing).
func trapezoid(y []float64) float64 {
	area := 0.0
	for i := 1; i < len(y); i++ {
		area += (y[i] + y[i-1]) / 2
	}
	return area
}

func sliceMax(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	best := v[0]
	for _, x := range v[1:] {
		if x > best {
			best = x
		}
	}
	return best
}

func sliceMin(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	best := v[0]
	for _, x := range v[1:] {
		if x < best {
			best = x
		}
	}
	return best
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
