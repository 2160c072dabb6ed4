// Package chart renders response summaries as PNG bar charts.
package chart

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/parisxmas/sitesurvey/internal/models"
)

var ErrNoData = errors.New("chart: no data to plot")

const (
	width          = 720
	height         = 480
	labelRotation  = 15.0
	axisLabelSize  = 11.0
	bottomPadding  = 70
	leftPadding    = 40
	maxYAxisTicks  = 10
	barWidth       = 60
	barSpacing     = 30
	titleFontSize  = 14.0
	materialTitle  = "Material quality ratings"
	materialXLabel = "Quality level"
	yLabel         = "Number of responses"
)

// Labels are the captions drawn around a chart.
type Labels struct {
	Title  string
	XLabel string
	YLabel string
}

// LabelsFor returns the captions used for a summarised column.
func LabelsFor(column string) Labels {
	if column == models.ColMaterialQuality {
		return Labels{Title: materialTitle, XLabel: materialXLabel, YLabel: yLabel}
	}
	return Labels{Title: column + " ratings", XLabel: column, YLabel: yLabel}
}

// Bar returns the bar chart for s: one bar per distinct value, in summary
// order, with the response count as height.
func Bar(s *models.Summary) (*gochart.BarChart, error) {
	if s == nil || s.Empty || len(s.Counts) == 0 {
		return nil, ErrNoData
	}
	labels := LabelsFor(s.Column)

	bars := make([]gochart.Value, 0, len(s.Counts))
	for _, c := range s.Counts {
		bars = append(bars, gochart.Value{Label: c.Value, Value: float64(c.Count)})
	}

	top := s.Max() + 1
	return &gochart.BarChart{
		Title:      labels.Title,
		TitleStyle: gochart.Style{FontSize: titleFontSize},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: leftPadding, Right: 20, Bottom: bottomPadding},
		},
		XAxis: gochart.Style{TextRotationDegrees: labelRotation},
		YAxis: gochart.YAxis{
			Name:  labels.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(top)},
			Ticks: countTicks(top),
		},
		Bars: bars,
		Elements: []gochart.Renderable{
			xAxisLabel(labels.XLabel),
			yAxisLabel(labels.YLabel),
		},
	}, nil
}

// Render writes the PNG bar chart for s to w.
func Render(s *models.Summary, w io.Writer) error {
	c, err := Bar(s)
	if err != nil {
		return err
	}
	return c.Render(gochart.PNG, w)
}

// PNG is Render into a byte slice.
func PNG(s *models.Summary) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// countTicks returns whole-number ticks from 0 to top, thinned out so at most
// maxYAxisTicks labels are drawn.
func countTicks(top int) []gochart.Tick {
	step := 1
	for top/step > maxYAxisTicks {
		step++
	}
	ticks := make([]gochart.Tick, 0, top/step+2)
	for v := 0; v <= top; v += step {
		ticks = append(ticks, gochart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	if last := ticks[len(ticks)-1].Value; int(last) != top {
		ticks = append(ticks, gochart.Tick{Value: float64(top), Label: strconv.Itoa(top)})
	}
	return ticks
}

func axisStyle(defaults gochart.Style) gochart.Style {
	return gochart.Style{
		FontSize:  axisLabelSize,
		FontColor: drawing.ColorBlack,
	}.InheritFrom(defaults)
}

// The bar chart only draws tick labels, so the axis captions are added as
// extra elements.
func xAxisLabel(text string) gochart.Renderable {
	return func(r gochart.Renderer, canvas gochart.Box, defaults gochart.Style) {
		axisStyle(defaults).WriteTextOptionsToRenderer(r)
		tb := r.MeasureText(text)
		x := canvas.Left + (canvas.Width()-tb.Width())/2
		r.Text(text, x, height-12)
	}
}

func yAxisLabel(text string) gochart.Renderable {
	return func(r gochart.Renderer, canvas gochart.Box, defaults gochart.Style) {
		axisStyle(defaults).WriteTextOptionsToRenderer(r)
		tb := r.MeasureText(text)
		r.SetTextRotation(gochart.DegreesToRadians(270))
		r.Text(text, 16, canvas.Top+(canvas.Height()+tb.Width())/2)
		r.ClearTextRotation()
	}
}
