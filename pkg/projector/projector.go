// Package projector maps incident intervals onto a bounded reporting window
// as percentage offsets and widths.
package projector

import (
	"errors"
	"math"
	"time"

	"statuspage/pkg/apperror"
)

// VisibilityFloor is the minimum width, in percent of the window, of any bar.
const VisibilityFloor = 0.5

var (
	ErrInvalidInterval = errors.New("incident ends before it starts")
	ErrInvalidWindow   = errors.New("window span must be positive")
)

// Interval is an incident's time range. A nil End means the incident is ongoing.
type Interval struct {
	Start time.Time
	End   *time.Time
}

func (iv Interval) Ongoing() bool { return iv.End == nil }

// effectiveEnd resolves an ongoing interval to now, never earlier than Start.
func (iv Interval) effectiveEnd(now time.Time) time.Time {
	if iv.End != nil {
		return *iv.End
	}
	if now.Before(iv.Start) {
		return iv.Start
	}
	return now
}

// Window is the reporting period [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// LastDays returns the window ending at now and spanning days days.
func LastDays(now time.Time, days int) Window {
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

func (w Window) Span() time.Duration { return w.End.Sub(w.Start) }

// Layout is a bar's position within the window, in percent.
type Layout struct {
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
}

// Rounded returns the layout rounded to two decimal places.
func (l Layout) Rounded() Layout {
	return Layout{LeftPercent: Round2(l.LeftPercent), WidthPercent: Round2(l.WidthPercent)}
}

// Project positions iv inside w. The interval is clipped to the window first.
// When nothing is left after clipping the bar keeps the floor width and sits at
// the clipped start, bounded to [0, 100].
func Project(iv Interval, w Window, now time.Time) (Layout, error) {
	const op string = "projector.project"

	if iv.End != nil && iv.End.Before(iv.Start) {
		return Layout{}, &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Err:     ErrInvalidInterval,
			Message: "incident end time is before its start time",
		}
	}

	span := w.Span()
	if span <= 0 {
		return Layout{}, &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Err:     ErrInvalidWindow,
			Message: "timeline period end must be after its start",
		}
	}

	clippedStart := maxTime(iv.Start, w.Start)
	clippedEnd := minTime(iv.effectiveEnd(now), w.End)

	left := clamp(percentOf(clippedStart.Sub(w.Start), span), 0, 100)
	if !clippedEnd.After(clippedStart) {
		return Layout{LeftPercent: left, WidthPercent: VisibilityFloor}, nil
	}

	width := percentOf(clippedEnd.Sub(clippedStart), span)
	return Layout{LeftPercent: left, WidthPercent: math.Max(width, VisibilityFloor)}, nil
}

// DurationHours is the unclipped length of iv in hours, never negative.
func DurationHours(iv Interval, now time.Time) float64 {
	h := iv.effectiveEnd(now).Sub(iv.Start).Hours()
	if h < 0 {
		return 0
	}
	return h
}

func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func percentOf(d, span time.Duration) float64 {
	return float64(d) / float64(span) * 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
