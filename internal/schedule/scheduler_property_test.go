package schedule

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestForLot_Invariants_NoOverlapAndDeterminism property-tests the core
// scheduling invariants over randomized lots: windows never overlap, every
// start lands on a business day, day counts are at least one, and two runs
// over the same input agree byte for byte.
func TestForLot_Invariants_NoOverlapAndDeterminism(t *testing.T) {
	var cal Calendar
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		rate := float64(rng.Intn(40000) + 1000)
		start := date(2025, time.January, 1).AddDate(0, 0, rng.Intn(120))

		numAreas := rng.Intn(12) + 1
		areas := make([]domain.ServiceArea, numAreas)
		for i := range areas {
			a := makeArea(int64(rng.Intn(500)+1), rng.Intn(3)+1, float64(rng.Intn(120000)+100))
			if rng.Intn(2) == 1 {
				a = withOrder(a, rng.Intn(10))
			}
			if rng.Intn(6) == 0 {
				a.ManualSchedule = true
			}
			if rng.Intn(8) == 0 {
				a.SizeM2 = nil
			}
			areas[i] = a
		}

		preds, err := cal.ForLot(areas, 1, rate, start)
		require.NoError(t, err, "trial %d", trial)

		again, err := cal.ForLot(areas, 1, rate, start)
		require.NoError(t, err, "trial %d", trial)
		assert.Equal(t, preds, again, "trial %d: identical input must give identical output", trial)

		var prevEnd time.Time
		for j, p := range preds {
			assert.GreaterOrEqual(t, p.WorkingDays, 1,
				"trial %d pred %d: every area costs at least one working day", trial, j)

			windowStart, err := time.Parse(DateLayout, p.NextDate)
			require.NoError(t, err, "trial %d pred %d", trial, j)
			windowStart = windowStart.UTC()

			assert.True(t, cal.IsBusinessDay(windowStart),
				"trial %d pred %d: window start %s must be a business day", trial, j, p.NextDate)

			if j > 0 {
				assert.True(t, windowStart.After(prevEnd),
					"trial %d pred %d: window starting %s overlaps previous window ending %s",
					trial, j, p.NextDate, prevEnd.Format(DateLayout))
			}

			prevEnd = cal.AddBusinessDays(windowStart, p.WorkingDays-1)
		}
	}
}
