package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"

	"StockVault/internal/domain/models"
	"StockVault/pkg/logger"
)

// Outcome statuses for one indicator in a calculation run.
const (
	OutcomeComputed            = "computed"
	OutcomeSkippedInsufficient = "skipped_insufficient_history"
	OutcomeFailed              = "failed"
)

// Outcome reports what happened to one requested indicator. A skipped or
// failed indicator never aborts the run; callers decide how to surface it.
type Outcome struct {
	Name   string
	Status string
	Reason string
}

// Calculator computes indicator series over bar data.
type Calculator struct {
	log *logger.Logger
}

func NewCalculator(log *logger.Logger) *Calculator {
	return &Calculator{log: log}
}

// Calculate runs every definition over bars, oldest first. The returned map
// holds one series per computed indicator, each aligned 1:1 with bars;
// outcomes has one entry per requested definition in input order.
func (c *Calculator) Calculate(bars []models.DailyBar, defs []Definition) (map[string]models.IndicatorSeries, []Outcome) {
	results := make(map[string]models.IndicatorSeries, len(defs))
	outcomes := make([]Outcome, 0, len(defs))

	var in inputs
	if len(defs) > 0 {
		in = inputs{
			highs:   models.Highs(bars),
			lows:    models.Lows(bars),
			closes:  models.Closes(bars),
			volumes: models.Volumes(bars),
		}
	}

	for _, def := range defs {
		if len(bars) < def.MinHistory {
			c.log.Debug("indicator skipped",
				logger.String("indicator", def.Name),
				logger.Int("bars", len(bars)),
				logger.Int("min_history", def.MinHistory))
			outcomes = append(outcomes, Outcome{
				Name:   def.Name,
				Status: OutcomeSkippedInsufficient,
				Reason: fmt.Sprintf("%d bars, need %d", len(bars), def.MinHistory),
			})
			continue
		}

		outputs, err := compute(def, in)
		if err != nil {
			c.log.Warn("indicator failed",
				logger.String("indicator", def.Name),
				logger.Error(err))
			outcomes = append(outcomes, Outcome{Name: def.Name, Status: OutcomeFailed, Reason: err.Error()})
			continue
		}

		results[def.Name] = buildSeries(def, bars, outputs)
		outcomes = append(outcomes, Outcome{Name: def.Name, Status: OutcomeComputed})
	}

	return results, outcomes
}

type inputs struct {
	highs, lows, closes, volumes []float64
}

// compute dispatches on Kind and returns one nullable series per output name,
// in the order of def.Outputs.
func compute(def Definition, in inputs) ([][]*float64, error) {
	switch def.Kind {
	case KindSMA:
		p := def.Params["period"]
		return [][]*float64{maskWarmup(talib.Sma(in.closes, p), p-1)}, nil

	case KindEMA:
		p := def.Params["period"]
		return [][]*float64{maskWarmup(talib.Ema(in.closes, p), p-1)}, nil

	case KindRSI:
		p := def.Params["period"]
		return [][]*float64{maskWarmup(talib.Rsi(in.closes, p), p)}, nil

	case KindMACD:
		fast, slow, signal := def.Params["fast"], def.Params["slow"], def.Params["signal"]
		line, sig, hist := talib.Macd(in.closes, fast, slow, signal)
		return [][]*float64{
			maskWarmup(line, slow-1),
			maskWarmup(sig, slow+signal-2),
			maskWarmup(hist, slow+signal-2),
		}, nil

	case KindBollinger:
		p := def.Params["period"]
		dev := float64(def.Params["std_dev"])
		upper, middle, lower := talib.BBands(in.closes, p, dev, dev, talib.SMA)
		return [][]*float64{
			maskWarmup(upper, p-1),
			maskWarmup(middle, p-1),
			maskWarmup(lower, p-1),
		}, nil

	case KindADX:
		p := def.Params["period"]
		return [][]*float64{
			maskWarmup(talib.Adx(in.highs, in.lows, in.closes, p), 2*p-1),
			maskWarmup(talib.PlusDI(in.highs, in.lows, in.closes, p), p),
			maskWarmup(talib.MinusDI(in.highs, in.lows, in.closes, p), p),
		}, nil

	case KindATR:
		p := def.Params["period"]
		return [][]*float64{maskWarmup(talib.Atr(in.highs, in.lows, in.closes, p), p)}, nil

	case KindStochastic:
		p, smooth := def.Params["period"], def.Params["smooth"]
		fastK := stochFastK(in.highs, in.lows, in.closes, p)
		percentD := smaSeries(fastK, smooth)
		return [][]*float64{maskSeries(fastK), maskSeries(percentD)}, nil

	case KindOBV:
		return [][]*float64{maskWarmup(talib.Obv(in.closes, in.volumes), 0)}, nil

	case KindCMF:
		p := def.Params["period"]
		return [][]*float64{maskSeries(cmfSeries(in.highs, in.lows, in.closes, in.volumes, p))}, nil

	case KindVolumeSMA:
		p := def.Params["period"]
		return [][]*float64{maskWarmup(talib.Sma(in.volumes, p), p-1)}, nil

	default:
		return nil, fmt.Errorf("indicator kind %d not implemented", def.Kind)
	}
}

func buildSeries(def Definition, bars []models.DailyBar, outputs [][]*float64) models.IndicatorSeries {
	points := make([]models.IndicatorPoint, len(bars))
	for i, bar := range bars {
		values := make(map[string]*float64, len(def.Outputs))
		for j, name := range def.Outputs {
			values[name] = outputs[j][i]
		}
		points[i] = models.IndicatorPoint{Date: bar.Date, Values: values}
	}
	return models.IndicatorSeries{
		Name:        def.Name,
		DisplayName: def.DisplayName,
		Category:    def.Category,
		Parameters:  def.Params,
		Values:      points,
	}
}
