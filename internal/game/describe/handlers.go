package describe

import (
	"math"
	"strconv"

	"go.uber.org/zap"
)

// indexHandler transforms a slot value before it is printed. A precision of
// -1 prints the shortest exact form.
type indexHandler struct {
	apply     func(float64) float64
	precision int
}

func scale(f float64) func(float64) float64 {
	return func(v float64) float64 { return v * f }
}

var indexHandlers = map[string]indexHandler{
	"negate":                       {scale(-1), -1},
	"negate_and_double":            {scale(-2), -1},
	"double":                       {scale(2), -1},
	"times_twenty":                 {scale(20), -1},
	"times_one_point_five":         {scale(1.5), -1},
	"30%_of_value":                 {scale(0.3), -1},
	"60%_of_value":                 {scale(0.6), -1},
	"divide_by_two_0dp":            {scale(0.5), 0},
	"divide_by_three":              {scale(1.0 / 3), -1},
	"divide_by_five":               {scale(0.2), -1},
	"divide_by_ten_0dp":            {scale(0.1), 0},
	"divide_by_ten_1dp":            {scale(0.1), 1},
	"divide_by_twelve":             {scale(1.0 / 12), -1},
	"divide_by_fifteen_0dp":        {scale(1.0 / 15), 0},
	"divide_by_fifty":              {scale(0.02), -1},
	"divide_by_one_hundred":        {scale(0.01), -1},
	"divide_by_one_hundred_2dp":    {scale(0.01), 2},
	"divide_by_one_thousand":       {scale(0.001), -1},
	"deciseconds_to_seconds":       {scale(0.1), -1},
	"milliseconds_to_seconds":      {scale(0.001), -1},
	"milliseconds_to_seconds_0dp":  {scale(0.001), 0},
	"milliseconds_to_seconds_2dp":  {scale(0.001), 2},
	"per_minute_to_per_second":     {scale(1.0 / 60), 1},
	"per_minute_to_per_second_0dp": {scale(1.0 / 60), 0},
	"per_minute_to_per_second_2dp": {scale(1.0 / 60), 2},
}

// formatValue applies the named handlers to roll in order and prints the
// result. The last handler that fixes a precision decides it. Unrecognized
// handlers leave the value alone and are reported once.
func (e *Engine) formatValue(names []string, roll int) string {
	if len(names) == 0 {
		return strconv.Itoa(roll)
	}
	v := float64(roll)
	precision := -1
	for _, name := range names {
		h, ok := indexHandlers[name]
		if !ok {
			if _, seen := e.unknown.LoadOrStore(name, struct{}{}); !seen {
				e.logger.Debug("unrecognized index handler", zap.String("handler", name))
			}
			continue
		}
		v = h.apply(v)
		if h.precision >= 0 {
			precision = h.precision
		}
	}
	if precision < 0 {
		// Trim float noise from fractional factors.
		v = math.Round(v*1e6) / 1e6
	}
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
