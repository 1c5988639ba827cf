package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evelone226/salon-appointment-service/pkg/types"
)

func window(start, end string) *CalendarWindow {
	return &CalendarWindow{
		Weekday:   time.Monday,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestCalendarWindow_Overlaps(t *testing.T) {
	morning := window("09:00", "13:00")

	assert.True(t, morning.Overlaps(window("12:00", "14:00")))
	assert.True(t, morning.Overlaps(window("08:00", "09:30")))
	assert.True(t, morning.Overlaps(window("10:00", "11:00")))

	// Окна впритык не пересекаются
	assert.False(t, morning.Overlaps(window("13:00", "18:00")))
	assert.False(t, morning.Overlaps(window("07:00", "09:00")))
	assert.False(t, morning.Overlaps(window("14:00", "18:00")))
}

func TestCalendarWindow_Covers(t *testing.T) {
	w := window("09:00", "13:00")

	assert.True(t, w.Covers(types.TimeString("09:00"), types.TimeString("13:00")))
	assert.True(t, w.Covers(types.TimeString("10:00"), types.TimeString("10:45")))

	assert.False(t, w.Covers(types.TimeString("08:45"), types.TimeString("09:30")))
	assert.False(t, w.Covers(types.TimeString("12:30"), types.TimeString("13:15")))
	assert.False(t, w.Covers(types.TimeString("13:00"), types.TimeString("14:00")))
}

func TestFindCoveringWindow(t *testing.T) {
	windows := []*CalendarWindow{
		window("09:00", "13:00"),
		window("14:00", "20:00"),
	}

	found := FindCoveringWindow(windows, types.TimeString("15:00"), types.TimeString("16:00"))
	assert.Same(t, windows[1], found)

	found = FindCoveringWindow(windows, types.TimeString("09:00"), types.TimeString("10:00"))
	assert.Same(t, windows[0], found)

	// Слот в перерыве между окнами
	assert.Nil(t, FindCoveringWindow(windows, types.TimeString("12:30"), types.TimeString("14:30")))
	assert.Nil(t, FindCoveringWindow(nil, types.TimeString("10:00"), types.TimeString("11:00")))
}
