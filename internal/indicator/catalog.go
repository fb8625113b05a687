package indicator

import (
	"fmt"
	"sort"
)

// Kind identifies an indicator family. Concrete indicators are a Kind plus
// parameters, registered under a stable identifier like "SMA_20".
type Kind int

const (
	KindSMA Kind = iota
	KindEMA
	KindRSI
	KindMACD
	KindBollinger
	KindADX
	KindATR
	KindStochastic
	KindOBV
	KindCMF
	KindVolumeSMA
)

// Indicator categories.
const (
	CategoryTrend      = "trend"
	CategoryMomentum   = "momentum"
	CategoryVolatility = "volatility"
	CategoryVolume     = "volume"
)

// Definition is one registered indicator: a Kind with fixed parameters, the
// minimum history it needs to yield at least one value, and its output names.
type Definition struct {
	Name        string
	Kind        Kind
	DisplayName string
	Category    string
	Params      map[string]int
	MinHistory  int
	Outputs     []string
}

var registry = map[string]Definition{
	"SMA_20": {
		Name: "SMA_20", Kind: KindSMA, DisplayName: "Simple Moving Average (20)",
		Category: CategoryTrend, Params: map[string]int{"period": 20},
		MinHistory: 20, Outputs: []string{"SMA"},
	},
	"SMA_50": {
		Name: "SMA_50", Kind: KindSMA, DisplayName: "Simple Moving Average (50)",
		Category: CategoryTrend, Params: map[string]int{"period": 50},
		MinHistory: 50, Outputs: []string{"SMA"},
	},
	"SMA_200": {
		Name: "SMA_200", Kind: KindSMA, DisplayName: "Simple Moving Average (200)",
		Category: CategoryTrend, Params: map[string]int{"period": 200},
		MinHistory: 200, Outputs: []string{"SMA"},
	},
	"EMA_12": {
		Name: "EMA_12", Kind: KindEMA, DisplayName: "Exponential Moving Average (12)",
		Category: CategoryTrend, Params: map[string]int{"period": 12},
		MinHistory: 25, Outputs: []string{"EMA"},
	},
	"EMA_26": {
		Name: "EMA_26", Kind: KindEMA, DisplayName: "Exponential Moving Average (26)",
		Category: CategoryTrend, Params: map[string]int{"period": 26},
		MinHistory: 50, Outputs: []string{"EMA"},
	},
	"RSI_14": {
		Name: "RSI_14", Kind: KindRSI, DisplayName: "Relative Strength Index (14)",
		Category: CategoryMomentum, Params: map[string]int{"period": 14},
		MinHistory: 15, Outputs: []string{"RSI"},
	},
	"MACD": {
		Name: "MACD", Kind: KindMACD, DisplayName: "MACD (12, 26, 9)",
		Category:   CategoryMomentum,
		Params:     map[string]int{"fast": 12, "slow": 26, "signal": 9},
		MinHistory: 35, Outputs: []string{"MACD", "signal", "histogram"},
	},
	"BB_20": {
		Name: "BB_20", Kind: KindBollinger, DisplayName: "Bollinger Bands (20, 2)",
		Category: CategoryVolatility, Params: map[string]int{"period": 20, "std_dev": 2},
		MinHistory: 20, Outputs: []string{"upper", "middle", "lower"},
	},
	"ADX_14": {
		Name: "ADX_14", Kind: KindADX, DisplayName: "Average Directional Index (14)",
		Category: CategoryTrend, Params: map[string]int{"period": 14},
		MinHistory: 28, Outputs: []string{"ADX", "DI+", "DI-"},
	},
	"ATR_14": {
		Name: "ATR_14", Kind: KindATR, DisplayName: "Average True Range (14)",
		Category: CategoryVolatility, Params: map[string]int{"period": 14},
		MinHistory: 15, Outputs: []string{"ATR"},
	},
	"STOCH": {
		Name: "STOCH", Kind: KindStochastic, DisplayName: "Stochastic Oscillator (14, 3)",
		Category: CategoryMomentum, Params: map[string]int{"period": 14, "smooth": 3},
		MinHistory: 14, Outputs: []string{"%K", "%D"},
	},
	"OBV": {
		Name: "OBV", Kind: KindOBV, DisplayName: "On-Balance Volume",
		Category: CategoryVolume, MinHistory: 2, Outputs: []string{"OBV"},
	},
	"CMF_20": {
		Name: "CMF_20", Kind: KindCMF, DisplayName: "Chaikin Money Flow (20)",
		Category: CategoryVolume, Params: map[string]int{"period": 20},
		MinHistory: 21, Outputs: []string{"CMF"},
	},
	"VOLUME_SMA_20": {
		Name: "VOLUME_SMA_20", Kind: KindVolumeSMA, DisplayName: "Volume SMA (20)",
		Category: CategoryVolume, Params: map[string]int{"period": 20},
		MinHistory: 20, Outputs: []string{"Volume_SMA"},
	},
}

// Lookup returns the definition registered under name.
func Lookup(name string) (Definition, error) {
	def, ok := registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown indicator %q", name)
	}
	return def, nil
}

// All returns every registered definition, sorted by name for stable output.
func All() []Definition {
	out := make([]Definition, 0, len(registry))
	for _, def := range registry {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
