package options

import "math"

// Abramowitz & Stegun 26.2.17 coefficients.
const (
	p  = 0.2316419
	b1 = 0.319381530
	b2 = -0.356563782
	b3 = 1.781477937
	b4 = -1.821255978
	b5 = 1.330274429
)

// normCDF approximates the standard normal CDF. Accuracy is better than
// 1e-6 against the analytic CDF; N(-x) == 1-N(x) holds exactly because
// negative inputs are mirrored.
func normCDF(x float64) float64 {
	if x < 0 {
		return 1 - normCDF(-x)
	}
	t := 1 / (1 + p*x)
	poly := t * (b1 + t*(b2+t*(b3+t*(b4+t*b5))))
	return 1 - normPDF(x)*poly
}

func normPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}
