package indicator

import "math"

// go-talib zero-fills the warmup region of its outputs instead of marking it
// undefined. maskWarmup converts a raw talib series into nullable values,
// dropping the first lookback positions and any non-finite results.
func maskWarmup(vals []float64, lookback int) []*float64 {
	out := make([]*float64, len(vals))
	for i := lookback; i < len(vals); i++ {
		if !isFinite(vals[i]) {
			continue
		}
		v := vals[i]
		out[i] = &v
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// smaSeries computes a simple moving average over a series that may contain
// NaN markers; any NaN inside the window yields NaN for that position.
func smaSeries(series []float64, period int) []float64 {
	out := make([]float64, len(series))
	for i := range out {
		out[i] = math.NaN()
	}
	for i := period - 1; i < len(series); i++ {
		sum := 0.0
		valid := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(series[j]) {
				valid = false
				break
			}
			sum += series[j]
		}
		if valid {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// stochFastK computes the raw stochastic %K: position of the close within the
// highest-high/lowest-low range of the trailing period window. A zero range
// yields 0, matching the flat-market convention of the stored data format.
func stochFastK(highs, lows, closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	for i := period - 1; i < len(closes); i++ {
		hh := math.Inf(-1)
		ll := math.Inf(1)
		for j := i - period + 1; j <= i; j++ {
			if highs[j] > hh {
				hh = highs[j]
			}
			if lows[j] < ll {
				ll = lows[j]
			}
		}
		if hh == ll {
			out[i] = 0
			continue
		}
		out[i] = (closes[i] - ll) / (hh - ll) * 100
	}
	return out
}

// cmfSeries computes Chaikin Money Flow: the period sum of money flow volume
// over the period sum of volume. Bars with a zero high-low range contribute
// zero money flow.
func cmfSeries(highs, lows, closes, volumes []float64, period int) []float64 {
	n := len(closes)
	mfv := make([]float64, n)
	for i := 0; i < n; i++ {
		rng := highs[i] - lows[i]
		if rng == 0 {
			continue
		}
		mult := ((closes[i] - lows[i]) - (highs[i] - closes[i])) / rng
		mfv[i] = mult * volumes[i]
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	for i := period - 1; i < n; i++ {
		var mfvSum, volSum float64
		for j := i - period + 1; j <= i; j++ {
			mfvSum += mfv[j]
			volSum += volumes[j]
		}
		if volSum == 0 {
			out[i] = 0
			continue
		}
		out[i] = mfvSum / volSum
	}
	return out
}

// maskSeries converts a NaN-marked series into nullable values.
func maskSeries(vals []float64) []*float64 {
	out := make([]*float64, len(vals))
	for i, v := range vals {
		if !isFinite(v) {
			continue
		}
		val := v
		out[i] = &val
	}
	return out
}
