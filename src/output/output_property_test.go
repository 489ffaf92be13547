package output

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatMinutesProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Minutes and seconds add back up to the input, within display rounding.
	properties.Property("minutes and seconds recompose the duration", prop.ForAll(
		func(ms int64) bool {
			d := time.Duration(ms) * time.Millisecond
			var mins int
			var secs float64
			if _, err := fmt.Sscanf(FormatMinutes(d), "%dmin %fs", &mins, &secs); err != nil {
				return false
			}
			total := float64(mins)*60 + secs
			return math.Abs(total-d.Seconds()) <= 0.005+1e-9 && secs < 60.005
		},
		gen.Int64Range(0, int64(10*time.Hour/time.Millisecond)),
	))

	properties.TestingRun(t)
}
