package indicator

import (
	"math"
	"testing"
	"time"

	"StockVault/internal/domain/models"
	"StockVault/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// makeBars builds n consecutive weekday bars with close = base + i.
func makeBars(n int, base float64) []models.DailyBar {
	bars := make([]models.DailyBar, 0, n)
	day := models.NewDate(2024, time.January, 2)
	for len(bars) < n {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			c := base + float64(len(bars))
			bars = append(bars, models.DailyBar{
				Date: day, Open: c - 0.5, High: c + 1, Low: c - 1,
				Close: c, AdjClose: c, Volume: 1_000_000,
			})
		}
		day = day.AddDays(1)
	}
	return bars
}

func flatBars(n int, price float64) []models.DailyBar {
	bars := makeBars(n, price)
	for i := range bars {
		bars[i].Open, bars[i].High, bars[i].Low, bars[i].Close, bars[i].AdjClose = price, price, price, price, price
	}
	return bars
}

func mustDefs(t *testing.T, selector string) []Definition {
	t.Helper()
	defs := ResolveAndValidate(selector)
	if len(defs) == 0 {
		t.Fatalf("selector %q resolved to nothing", selector)
	}
	return defs
}

func TestCalculateSkipsOnInsufficientHistory(t *testing.T) {
	calc := NewCalculator(testLogger(t))
	bars := makeBars(10, 100)

	results, outcomes := calc.Calculate(bars, mustDefs(t, "SMA_20"))
	if len(results) != 0 {
		t.Fatalf("expected no computed series, got %d", len(results))
	}
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if outcomes[0].Status != OutcomeSkippedInsufficient {
		t.Errorf("status = %s, want %s", outcomes[0].Status, OutcomeSkippedInsufficient)
	}
}

func TestCalculateSMAWarmupAndValues(t *testing.T) {
	calc := NewCalculator(testLogger(t))
	bars := flatBars(30, 50)

	results, outcomes := calc.Calculate(bars, mustDefs(t, "SMA_20"))
	if outcomes[0].Status != OutcomeComputed {
		t.Fatalf("status = %s (%s)", outcomes[0].Status, outcomes[0].Reason)
	}

	series, ok := results["SMA_20"]
	if !ok {
		t.Fatal("SMA_20 series missing")
	}
	if len(series.Values) != len(bars) {
		t.Fatalf("series has %d points, bars %d", len(series.Values), len(bars))
	}

	for i, pt := range series.Values {
		v := pt.Values["SMA"]
		if i < 19 {
			if v != nil {
				t.Errorf("point %d: expected nil in warmup region, got %v", i, *v)
			}
			continue
		}
		if v == nil {
			t.Fatalf("point %d: expected value, got nil", i)
		}
		if math.Abs(*v-50) > 1e-9 {
			t.Errorf("point %d: SMA of flat 50 series = %v", i, *v)
		}
	}

	if !series.Values[5].Date.Equal(bars[5].Date) {
		t.Error("indicator points not aligned with bar dates")
	}
}

func TestCalculateMACDWarmup(t *testing.T) {
	calc := NewCalculator(testLogger(t))
	bars := makeBars(60, 100)

	results, _ := calc.Calculate(bars, mustDefs(t, "MACD"))
	series := results["MACD"]

	if v := series.Values[24].Values["MACD"]; v != nil {
		t.Errorf("MACD line defined at index 24, expected warmup nil")
	}
	if v := series.Values[25].Values["MACD"]; v == nil {
		t.Errorf("MACD line nil at index 25, expected value")
	}
	if v := series.Values[32].Values["signal"]; v != nil {
		t.Errorf("signal defined at index 32, expected warmup nil")
	}
	if v := series.Values[33].Values["signal"]; v == nil {
		t.Errorf("signal nil at index 33, expected value")
	}
	if v := series.Values[33].Values["histogram"]; v == nil {
		t.Errorf("histogram nil at index 33, expected value")
	}
}

func TestCalculateStochastic(t *testing.T) {
	calc := NewCalculator(testLogger(t))

	// Flat market: zero trading range yields %K = 0, not a missing value.
	flat := flatBars(30, 75)
	results, outcomes := calc.Calculate(flat, mustDefs(t, "STOCH"))
	if outcomes[0].Status != OutcomeComputed {
		t.Fatalf("status = %s (%s)", outcomes[0].Status, outcomes[0].Reason)
	}
	series := results["STOCH"]
	if v := series.Values[20].Values["%K"]; v == nil || *v != 0 {
		t.Errorf("flat market %%K = %v, want 0", v)
	}

	// Rising market with close at the top of every bar range: %K pegs at 100.
	rising := makeBars(30, 100)
	for i := range rising {
		rising[i].High = rising[i].Close
	}
	results, _ = calc.Calculate(rising, mustDefs(t, "STOCH"))
	series = results["STOCH"]
	if v := series.Values[29].Values["%K"]; v == nil || math.Abs(*v-100) > 1e-9 {
		t.Errorf("rising market %%K = %v, want 100", v)
	}
	if v := series.Values[12].Values["%K"]; v != nil {
		t.Errorf("%%K defined at index 12, expected warmup nil")
	}
	if v := series.Values[15].Values["%D"]; v == nil {
		t.Errorf("%%D nil at index 15, expected value")
	}
}

func TestCalculateRSIBounds(t *testing.T) {
	calc := NewCalculator(testLogger(t))
	bars := makeBars(60, 100)
	for i := range bars {
		// Alternate up and down closes so RSI lands strictly inside its range.
		if i%2 == 0 {
			bars[i].Close = 100 + float64(i%7)
		} else {
			bars[i].Close = 100 - float64(i%5)
		}
		bars[i].Open = bars[i].Close - 0.5
		bars[i].High = bars[i].Close + 2
		bars[i].Low = bars[i].Close - 2
		bars[i].AdjClose = bars[i].Close
	}

	results, outcomes := calc.Calculate(bars, mustDefs(t, "RSI_14"))
	if outcomes[0].Status != OutcomeComputed {
		t.Fatalf("status = %s (%s)", outcomes[0].Status, outcomes[0].Reason)
	}
	series := results["RSI_14"]
	for i := 14; i < len(series.Values); i++ {
		v := series.Values[i].Values["RSI"]
		if v == nil {
			t.Fatalf("RSI nil at index %d", i)
		}
		if *v < 0 || *v > 100 {
			t.Errorf("RSI out of [0, 100] at index %d: %v", i, *v)
		}
	}
}

func TestCalculateCMFBounds(t *testing.T) {
	calc := NewCalculator(testLogger(t))
	bars := makeBars(40, 200)

	results, outcomes := calc.Calculate(bars, mustDefs(t, "CMF_20"))
	if outcomes[0].Status != OutcomeComputed {
		t.Fatalf("status = %s (%s)", outcomes[0].Status, outcomes[0].Reason)
	}
	series := results["CMF_20"]
	for i := 19; i < len(series.Values); i++ {
		v := series.Values[i].Values["CMF"]
		if v == nil {
			t.Fatalf("CMF nil at index %d", i)
		}
		if *v < -1 || *v > 1 {
			t.Errorf("CMF out of [-1, 1] at index %d: %v", i, *v)
		}
	}
}

func TestCalculateOBVCumulative(t *testing.T) {
	calc := NewCalculator(testLogger(t))
	bars := makeBars(10, 100) // strictly rising closes

	results, _ := calc.Calculate(bars, mustDefs(t, "OBV"))
	series := results["OBV"]

	var prev float64 = math.Inf(-1)
	for i, pt := range series.Values {
		v := pt.Values["OBV"]
		if v == nil {
			t.Fatalf("OBV nil at index %d", i)
		}
		if *v < prev {
			t.Errorf("OBV decreased at index %d on rising closes", i)
		}
		prev = *v
	}
}

func TestCalculateDefaultSetOutcomes(t *testing.T) {
	calc := NewCalculator(testLogger(t))
	bars := makeBars(40, 150) // enough for most of the default set, not SMA_50

	results, outcomes := calc.Calculate(bars, mustDefs(t, "default"))

	byName := make(map[string]Outcome, len(outcomes))
	for _, o := range outcomes {
		byName[o.Name] = o
	}

	if byName["SMA_50"].Status != OutcomeSkippedInsufficient {
		t.Errorf("SMA_50 status = %s, want skipped", byName["SMA_50"].Status)
	}
	for _, name := range []string{"SMA_20", "RSI_14", "MACD", "VOLUME_SMA_20", "ADX_14"} {
		if byName[name].Status != OutcomeComputed {
			t.Errorf("%s status = %s (%s), want computed", name, byName[name].Status, byName[name].Reason)
		}
		if _, ok := results[name]; !ok {
			t.Errorf("%s missing from results", name)
		}
	}
	if _, ok := results["SMA_50"]; ok {
		t.Error("SMA_50 present in results despite insufficient history")
	}
}

func TestCalculateBollingerOrdering(t *testing.T) {
	calc := NewCalculator(testLogger(t))
	bars := makeBars(40, 90)

	results, _ := calc.Calculate(bars, mustDefs(t, "BB_20"))
	series := results["BB_20"]
	for i := 19; i < len(series.Values); i++ {
		up := series.Values[i].Values["upper"]
		mid := series.Values[i].Values["middle"]
		low := series.Values[i].Values["lower"]
		if up == nil || mid == nil || low == nil {
			t.Fatalf("band nil at index %d", i)
		}
		if *up < *mid || *mid < *low {
			t.Errorf("bands out of order at index %d: %v %v %v", i, *up, *mid, *low)
		}
	}
}
