package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"statuspage/pkg/projector"
	"statuspage/pkg/status"
	"statuspage/pkg/statusclient"
)

const barWidth = 60

type view struct {
	Snapshot statusclient.StatusSnapshot
	Timeline statusclient.Timeline
}

func impactGlyph(i status.IncidentImpact) byte {
	switch i {
	case status.ImpactCritical:
		return '#'
	case status.ImpactHigh:
		return '='
	case status.ImpactMedium:
		return '-'
	case status.ImpactLow:
		return '.'
	}
	return '?'
}

// bar lays the blocks onto a fixed-width row. Where blocks overlap the more
// severe impact wins.
func bar(blocks []statusclient.TimelineBlock, w projector.Window, now time.Time) string {
	row := []byte(strings.Repeat(" ", barWidth))
	rank := make([]int, barWidth)
	for i := range rank {
		rank[i] = -1
	}

	for _, b := range blocks {
		iv := projector.Interval{Start: b.StartTime}
		if !b.IsOngoing {
			end := b.EndTime
			iv.End = &end
		}
		layout, err := projector.Project(iv, w, now)
		if err != nil {
			continue
		}

		from := int(layout.LeftPercent / 100 * barWidth)
		if from >= barWidth {
			from = barWidth - 1
		}
		cells := int(layout.WidthPercent/100*barWidth + 0.5)
		if cells < 1 {
			cells = 1
		}
		to := min(from+cells, barWidth)

		for x := from; x < to; x++ {
			if r := b.Impact.Rank(); r > rank[x] {
				rank[x] = r
				row[x] = impactGlyph(b.Impact)
			}
		}
	}
	return string(row)
}

func render(out io.Writer, v view, now time.Time) {
	services := make([]status.ServiceStatus, 0, len(v.Snapshot.Services))
	for _, s := range v.Snapshot.Services {
		services = append(services, s.Status)
	}

	fmt.Fprintf(out, "%s  %s\n", v.Snapshot.Organization.Name, strings.ToUpper(string(status.Aggregate(services))))
	fmt.Fprintf(out, "updated %s\n\n", now.Format(time.RFC1123))

	for _, s := range v.Snapshot.Services {
		fmt.Fprintf(out, "  %-28s %s\n", s.Name, s.Status)
	}

	period := v.Timeline.Period
	window := projector.Window{Start: period.StartDate, End: period.EndDate}
	fmt.Fprintf(out, "\nincidents, last %d days (%s .. %s)\n", period.Days,
		period.StartDate.Format("Jan 02"), period.EndDate.Format("Jan 02"))

	for _, svc := range v.Timeline.Services {
		fmt.Fprintf(out, "  %-20.20s |%s| %d\n", svc.Service.Name, bar(svc.Incidents, window, now), svc.IncidentCount)
	}

	sum := v.Timeline.Summary
	fmt.Fprintf(out, "\n  total %d  critical %d  high %d  ongoing %d  avg resolution %s\n",
		sum.TotalIncidents, sum.CriticalIncidents, sum.HighIncidents, sum.OngoingIncidents,
		projector.FormatDuration(sum.AverageResolutionHours))
	fmt.Fprintln(out, "  legend: # critical  = high  - medium  . low")
}
