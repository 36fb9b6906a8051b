package schedule

import (
	"testing"
	"time"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeArea(id int64, lot int, sizeM2 float64) domain.ServiceArea {
	return domain.ServiceArea{
		ID:      id,
		Name:    "Praça",
		Lot:     &lot,
		Service: domain.ServiceMowing,
		SizeM2:  &sizeM2,
	}
}

func withOrder(a domain.ServiceArea, order int) domain.ServiceArea {
	a.Order = &order
	return a
}

func TestForLot_TwoAreasFromMonday(t *testing.T) {
	var cal Calendar
	monday := date(2025, time.March, 3)

	areas := []domain.ServiceArea{
		makeArea(1, 1, 50000),
		makeArea(2, 1, 30000),
	}

	preds, err := cal.ForLot(areas, 1, 25000, monday)
	require.NoError(t, err)
	require.Len(t, preds, 2)

	// Area 1 needs 2 days, consumes Mon+Tue; area 2 needs 2 days and
	// starts Wednesday.
	assert.Equal(t, int64(1), preds[0].AreaID)
	assert.Equal(t, "2025-03-03", preds[0].NextDate)
	assert.Equal(t, 2, preds[0].WorkingDays)

	assert.Equal(t, int64(2), preds[1].AreaID)
	assert.Equal(t, "2025-03-05", preds[1].NextDate)
	assert.Equal(t, 2, preds[1].WorkingDays)
}

func TestForLot_FridayStartStaysOnFriday(t *testing.T) {
	var cal Calendar
	friday := date(2025, time.March, 7)

	preds, err := cal.ForLot([]domain.ServiceArea{makeArea(1, 1, 20000)}, 1, 25000, friday)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, "2025-03-07", preds[0].NextDate)
	assert.Equal(t, 1, preds[0].WorkingDays)
}

func TestForLot_SaturdayStartRollsToMonday(t *testing.T) {
	var cal Calendar
	saturday := date(2025, time.March, 8)

	preds, err := cal.ForLot([]domain.ServiceArea{makeArea(1, 1, 20000)}, 1, 25000, saturday)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, "2025-03-10", preds[0].NextDate)
}

func TestForLot_WindowSpansWeekend(t *testing.T) {
	var cal Calendar
	thursday := date(2025, time.March, 6)

	areas := []domain.ServiceArea{
		makeArea(1, 1, 50000), // Thu+Fri
		makeArea(2, 1, 10000), // next business day: Monday
	}

	preds, err := cal.ForLot(areas, 1, 25000, thursday)
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "2025-03-06", preds[0].NextDate)
	assert.Equal(t, "2025-03-10", preds[1].NextDate)
}

func TestForLot_ManualScheduleExcluded(t *testing.T) {
	var cal Calendar

	pinned := makeArea(1, 1, 50000)
	pinned.ManualSchedule = true
	areas := []domain.ServiceArea{pinned, makeArea(2, 1, 30000)}

	preds, err := cal.ForLot(areas, 1, 25000, date(2025, time.March, 3))
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, int64(2), preds[0].AreaID, "pinned area must never be rescheduled")
	assert.Equal(t, "2025-03-03", preds[0].NextDate, "queue starts at the front without the pinned area")
}

func TestForLot_FiltersLotAndService(t *testing.T) {
	var cal Calendar

	otherService := makeArea(3, 1, 10000)
	otherService.Service = "jardinagem"
	noLot := makeArea(4, 1, 10000)
	noLot.Lot = nil

	areas := []domain.ServiceArea{
		makeArea(1, 1, 10000),
		makeArea(2, 2, 10000),
		otherService,
		noLot,
	}

	preds, err := cal.ForLot(areas, 1, 25000, date(2025, time.March, 3))
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, int64(1), preds[0].AreaID)
}

func TestForLot_OrderingByOrdemThenID(t *testing.T) {
	var cal Calendar

	areas := []domain.ServiceArea{
		makeArea(10, 1, 10000),
		withOrder(makeArea(7, 1, 10000), 2),
		withOrder(makeArea(9, 1, 10000), 1),
		makeArea(3, 1, 10000),
		withOrder(makeArea(8, 1, 10000), 2),
	}

	preds, err := cal.ForLot(areas, 1, 25000, date(2025, time.March, 3))
	require.NoError(t, err)
	require.Len(t, preds, 5)

	got := make([]int64, len(preds))
	for i, p := range preds {
		got[i] = p.AreaID
	}
	// ordem 1 first, then the two ordem-2 areas by id, then the
	// ordem-less areas by id.
	assert.Equal(t, []int64{3, 9, 7, 8, 10}, got)
}

func TestForLot_MinimumOneDay(t *testing.T) {
	var cal Calendar

	tiny := makeArea(1, 1, 50)
	preds, err := cal.ForLot([]domain.ServiceArea{tiny}, 1, 25000, date(2025, time.March, 3))
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, 1, preds[0].WorkingDays)
}

func TestForLot_MissingSizeDefaults(t *testing.T) {
	var cal Calendar

	unsized := makeArea(1, 1, 0)
	unsized.SizeM2 = nil

	// Default 1000 m² at 400 m²/day needs 3 working days.
	preds, err := cal.ForLot([]domain.ServiceArea{unsized}, 1, 400, date(2025, time.March, 3))
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, 3, preds[0].WorkingDays)
}

func TestForLot_EmptyCandidates(t *testing.T) {
	var cal Calendar

	preds, err := cal.ForLot(nil, 1, 25000, date(2025, time.March, 3))
	require.NoError(t, err)
	assert.Empty(t, preds)
}

func TestForLot_RejectsNonPositiveRate(t *testing.T) {
	var cal Calendar
	areas := []domain.ServiceArea{makeArea(1, 1, 10000)}

	for _, rate := range []float64{0, -1} {
		_, err := cal.ForLot(areas, 1, rate, date(2025, time.March, 3))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidRate)
	}
}

func TestForLot_DoesNotMutateInput(t *testing.T) {
	var cal Calendar

	areas := []domain.ServiceArea{makeArea(2, 1, 50000), makeArea(1, 1, 30000)}
	_, err := cal.ForLot(areas, 1, 25000, date(2025, time.March, 3))
	require.NoError(t, err)

	assert.Equal(t, int64(2), areas[0].ID, "input slice order must survive")
	assert.Nil(t, areas[0].NextPrediction)
	assert.Nil(t, areas[0].DaysToComplete)
}

func TestForLot_HolidayConsumesNoCapacity(t *testing.T) {
	cal := Calendar{Holidays: map[string]bool{"2025-03-04": true}}

	areas := []domain.ServiceArea{
		makeArea(1, 1, 50000), // Mon + Wed (Tue is a holiday)
		makeArea(2, 1, 10000),
	}

	preds, err := cal.ForLot(areas, 1, 25000, date(2025, time.March, 3))
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "2025-03-03", preds[0].NextDate)
	assert.Equal(t, "2025-03-06", preds[1].NextDate, "second area starts the day after the stretched window")
}

func TestForAllLots_IndependentCalendars(t *testing.T) {
	var cal Calendar
	monday := date(2025, time.March, 3)

	areas := []domain.ServiceArea{
		makeArea(1, 1, 50000),
		makeArea(2, 2, 50000),
	}
	rates := domain.ProductionRates{1: 25000, 2: 25000}

	preds, err := cal.ForAllLots(areas, rates, monday)
	require.NoError(t, err)
	require.Len(t, preds, 2)

	// Lots do not share capacity: both start on the same Monday.
	assert.Equal(t, "2025-03-03", preds[0].NextDate)
	assert.Equal(t, "2025-03-03", preds[1].NextDate)
}
