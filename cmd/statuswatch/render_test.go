package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"statuspage/pkg/projector"
	"statuspage/pkg/status"
	"statuspage/pkg/statusclient"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

func block(impact status.IncidentImpact, start, end time.Time, ongoing bool) statusclient.TimelineBlock {
	return statusclient.TimelineBlock{Impact: impact, StartTime: start, EndTime: end, IsOngoing: ongoing}
}

func TestBar_PlacesBlocks(t *testing.T) {
	w := projector.LastDays(now, 10)

	// first day of the window: 6 cells
	row := bar([]statusclient.TimelineBlock{
		block(status.ImpactHigh, w.Start, w.Start.Add(24*time.Hour), false),
	}, w, now)

	assert.Len(t, row, barWidth)
	assert.Equal(t, "======", row[:6])
	assert.Equal(t, strings.Repeat(" ", barWidth-6), row[6:])
}

func TestBar_TinyIncidentStillVisible(t *testing.T) {
	w := projector.LastDays(now, 30)
	row := bar([]statusclient.TimelineBlock{
		block(status.ImpactLow, now.Add(-time.Minute), now, false),
	}, w, now)

	assert.Equal(t, byte('.'), row[barWidth-1])
	assert.Equal(t, 1, strings.Count(row, "."))
}

func TestBar_SevereWinsOverlap(t *testing.T) {
	w := projector.LastDays(now, 10)
	row := bar([]statusclient.TimelineBlock{
		block(status.ImpactCritical, w.Start, w.Start.Add(24*time.Hour), false),
		block(status.ImpactLow, w.Start, w.Start.Add(48*time.Hour), false),
	}, w, now)

	assert.Equal(t, "######......", row[:12])
}

func TestBar_OngoingRunsToNow(t *testing.T) {
	w := projector.LastDays(now, 10)
	row := bar([]statusclient.TimelineBlock{
		block(status.ImpactMedium, now.Add(-24*time.Hour), time.Time{}, true),
	}, w, now)

	assert.Equal(t, "------", row[barWidth-6:])
}

func TestRender_Summary(t *testing.T) {
	var v view
	v.Snapshot.Organization.Name = "Acme"
	v.Snapshot.Services = []statusclient.Service{
		{Name: "API", Status: status.PartialOutage},
		{Name: "Web", Status: status.Operational},
	}
	v.Timeline.Period.Days = 7
	v.Timeline.Period.StartDate = now.AddDate(0, 0, -7)
	v.Timeline.Period.EndDate = now
	v.Timeline.Summary.TotalIncidents = 2
	v.Timeline.Summary.AverageResolutionHours = 0.5

	var buf bytes.Buffer
	render(&buf, v, now)
	out := buf.String()

	assert.Contains(t, out, "Acme  MAJOR_OUTAGE")
	assert.Contains(t, out, "last 7 days")
	assert.Contains(t, out, "avg resolution 30m")
}
