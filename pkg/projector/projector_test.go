package projector

import (
	"errors"
	"testing"
	"time"

	"statuspage/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func at(h float64) time.Time {
	return base.Add(time.Duration(h * float64(time.Hour)))
}

func ptr(t time.Time) *time.Time { return &t }

func week() Window { return Window{Start: base, End: at(7 * 24)} }

func TestProject_SevenDayScenario(t *testing.T) {
	iv := Interval{Start: at(24), End: ptr(at(36))}

	got, err := Project(iv, week(), at(7*24))
	require.NoError(t, err)

	assert.InDelta(t, 14.29, got.LeftPercent, 0.005)
	assert.InDelta(t, 7.14, got.WidthPercent, 0.005)
	assert.Equal(t, Layout{LeftPercent: 14.29, WidthPercent: 7.14}, got.Rounded())
}

func TestProject_ContainingIntervalFillsWindow(t *testing.T) {
	iv := Interval{Start: at(-48), End: ptr(at(10 * 24))}

	got, err := Project(iv, week(), at(7*24))
	require.NoError(t, err)
	assert.InDelta(t, 0, got.LeftPercent, 1e-9)
	assert.InDelta(t, 100, got.WidthPercent, 1e-9)
}

func TestProject_StartBeforeWindowIsClipped(t *testing.T) {
	iv := Interval{Start: at(-12), End: ptr(at(12))}

	got, err := Project(iv, week(), at(7*24))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.LeftPercent)
	assert.InDelta(t, 12.0/168*100, got.WidthPercent, 1e-9)
}

func TestProject_TinyIncidentGetsFloor(t *testing.T) {
	w := Window{Start: base, End: at(1000)}
	iv := Interval{Start: at(500), End: ptr(at(501))} // 0.1 % of the window

	got, err := Project(iv, w, at(1000))
	require.NoError(t, err)
	assert.Equal(t, VisibilityFloor, got.WidthPercent)
	assert.InDelta(t, 50, got.LeftPercent, 1e-9)
}

func TestProject_InsideWindowStaysInBounds(t *testing.T) {
	w := week()
	for startH := 0.0; startH < 168; startH += 7.5 {
		for length := 0.25; startH+length <= 168; length *= 2 {
			iv := Interval{Start: at(startH), End: ptr(at(startH + length))}
			got, err := Project(iv, w, at(168))
			require.NoError(t, err)

			assert.GreaterOrEqual(t, got.LeftPercent, 0.0)
			assert.LessOrEqual(t, got.LeftPercent, 100.0)
			assert.GreaterOrEqual(t, got.WidthPercent, VisibilityFloor)
			if got.WidthPercent > VisibilityFloor {
				assert.LessOrEqual(t, got.LeftPercent+got.WidthPercent, 100+1e-9)
			}
		}
	}
}

func TestProject_OngoingUsesNow(t *testing.T) {
	iv := Interval{Start: at(6 * 24)}

	got, err := Project(iv, week(), at(6*24+12))
	require.NoError(t, err)
	assert.InDelta(t, 6.0/7*100, got.LeftPercent, 1e-9)
	assert.InDelta(t, 12.0/168*100, got.WidthPercent, 1e-9)
	assert.True(t, iv.Ongoing())
}

func TestProject_EmptyClipUsesFloorAtClampedPosition(t *testing.T) {
	w := week()

	before := Interval{Start: at(-48), End: ptr(at(-24))}
	got, err := Project(before, w, at(168))
	require.NoError(t, err)
	assert.Equal(t, Layout{LeftPercent: 0, WidthPercent: VisibilityFloor}, got)

	after := Interval{Start: at(200), End: ptr(at(210))}
	got, err = Project(after, w, at(168))
	require.NoError(t, err)
	assert.Equal(t, Layout{LeftPercent: 100, WidthPercent: VisibilityFloor}, got)

	instant := Interval{Start: at(24), End: ptr(at(24))}
	got, err = Project(instant, w, at(168))
	require.NoError(t, err)
	assert.InDelta(t, 24.0/168*100, got.LeftPercent, 1e-9)
	assert.Equal(t, VisibilityFloor, got.WidthPercent)
}

func TestProject_Errors(t *testing.T) {
	_, err := Project(Interval{Start: at(10), End: ptr(at(5))}, week(), at(168))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInterval))
	assert.True(t, apperror.IsKind(err, apperror.InvalidInput))

	_, err = Project(Interval{Start: at(1), End: ptr(at(2))}, Window{Start: base, End: base}, at(168))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidWindow))

	_, err = Project(Interval{Start: at(1), End: ptr(at(2))}, Window{Start: at(5), End: base}, at(168))
	assert.True(t, errors.Is(err, ErrInvalidWindow))
}

func TestDurationHours(t *testing.T) {
	assert.InDelta(t, 12, DurationHours(Interval{Start: at(24), End: ptr(at(36))}, at(100)), 1e-9)
	assert.InDelta(t, 4, DurationHours(Interval{Start: at(96)}, at(100)), 1e-9)
	assert.Equal(t, 0.0, DurationHours(Interval{Start: at(120)}, at(100)))
	assert.Equal(t, 0.0, DurationHours(Interval{Start: at(10), End: ptr(at(5))}, at(100)))
}

func TestLastDays(t *testing.T) {
	w := LastDays(at(30*24), 30)
	assert.Equal(t, base, w.Start)
	assert.Equal(t, 30*24*time.Hour, w.Span())
}
