package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59", "24:00"}
	for _, s := range valid {
		ts, err := NewTimeStringFromString(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, ts.String())
	}

	invalid := []string{"", "9:30", "09:60", "25:00", "24:01", "09-30", "ab:cd", "09:30:00"}
	for _, s := range invalid {
		_, err := NewTimeStringFromString(s)
		assert.Error(t, err, s)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("09:30")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	endOfDay := TimeString("24:00")
	minutes, err = endOfDay.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1440, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:30")

	shifted, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), shifted)

	// Ровно до конца суток - допустимо
	late := TimeString("23:00")
	shifted, err = late.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), shifted)

	// За пределы суток - ошибка
	_, err = late.AddMinutes(61)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("10:30").IsAfter(TimeString("10:00")))
}

func TestFromMinutes(t *testing.T) {
	ts, err := FromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	_, err = FromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = FromMinutes(1441)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	// Колонка типа time отдает секунды - обрезаются
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("18:45")))
	assert.Equal(t, TimeString("18:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 7, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:15"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
