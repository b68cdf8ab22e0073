package dashboard

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/paveg/salarydash/internal/aggregate"
)

// Money formats a USD amount rounded to whole dollars, e.g. $94,000.
func Money(v float64) string {
	return "$" + humanize.Commaf(math.Round(v))
}

// Kind is the chart type a panel renders as.
type Kind string

// Chart kinds.
const (
	KindBar        Kind = "bar"
	KindHistogram  Kind = "histogram"
	KindPie        Kind = "pie"
	KindChoropleth Kind = "choropleth"
)

// Chart presentation defaults.
const (
	OrientationHorizontal = "h"
	DefaultHole           = 0.5
	DefaultColorScale     = "rdylgn"
	NoDataMessage         = "no data"
)

// Point is one labelled value of a bar, pie or choropleth chart.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
	// Share is the fraction of the total for pie slices.
	Share float64 `json:"share,omitempty"`
}

// Chart is a declarative description of one panel. Any charting front end
// can draw it; the server's HTML page renders it as tables and bars.
type Chart struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	Title       string          `json:"title"`
	XLabel      string          `json:"x_label,omitempty"`
	YLabel      string          `json:"y_label,omitempty"`
	Orientation string          `json:"orientation,omitempty"`
	Hole        float64         `json:"hole,omitempty"`
	ColorScale  string          `json:"color_scale,omitempty"`
	Points      []Point         `json:"points"`
	Bins        []aggregate.Bin `json:"bins,omitempty"`
	Empty       bool            `json:"empty"`
	Message     string          `json:"message,omitempty"`
}

// markEmpty sets the empty-state fields when the chart has nothing to draw.
func (c *Chart) markEmpty() {
	if len(c.Points) == 0 && len(c.Bins) == 0 {
		c.Empty = true
		c.Message = NoDataMessage
	}
}

// MaxValue returns the largest point value or bin count, for scaling bars.
func (c Chart) MaxValue() float64 {
	m := 0.0
	for _, p := range c.Points {
		if p.Value > m {
			m = p.Value
		}
	}
	for _, b := range c.Bins {
		if float64(b.Count) > m {
			m = float64(b.Count)
		}
	}
	return m
}

func groupPoints(groups []aggregate.Group) []Point {
	points := make([]Point, len(groups))
	for i, g := range groups {
		points[i] = Point{Label: g.Key, Value: g.Mean, Count: g.Count}
	}
	return points
}

func sharePoints(groups []aggregate.Group) []Point {
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	points := make([]Point, len(groups))
	for i, g := range groups {
		points[i] = Point{Label: g.Key, Value: float64(g.Count), Count: g.Count}
		if total > 0 {
			points[i].Share = float64(g.Count) / float64(total)
		}
	}
	return points
}
