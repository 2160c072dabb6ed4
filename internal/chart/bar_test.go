package chart

import (
	"bytes"
	"testing"

	"github.com/parisxmas/sitesurvey/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestBarSingleValue(t *testing.T) {
	s := &models.Summary{
		Column: models.ColMaterialQuality,
		Total:  1,
		Counts: []models.Count{{Value: "Satisfactory", Count: 1}},
	}
	c, err := Bar(s)
	require.NoError(t, err)
	require.Len(t, c.Bars, 1)
	assert.Equal(t, "Satisfactory", c.Bars[0].Label)
	assert.Equal(t, 1.0, c.Bars[0].Value)
	assert.Equal(t, "Material quality ratings", c.Title)
	assert.Equal(t, "Number of responses", c.YAxis.Name)
	assert.Equal(t, labelRotation, c.XAxis.TextRotationDegrees)

	data, err := PNG(s)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestBarKeepsSummaryOrder(t *testing.T) {
	s := &models.Summary{
		Column: models.ColMaterialQuality,
		Total:  3,
		Counts: []models.Count{{Value: "Satisfactory", Count: 2}, {Value: "Average", Count: 1}},
	}
	c, err := Bar(s)
	require.NoError(t, err)
	require.Len(t, c.Bars, 2)
	assert.Equal(t, "Satisfactory", c.Bars[0].Label)
	assert.Equal(t, 2.0, c.Bars[0].Value)
	assert.Equal(t, "Average", c.Bars[1].Label)

	var buf bytes.Buffer
	require.NoError(t, Render(s, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestBarNoData(t *testing.T) {
	_, err := Bar(&models.Summary{Column: models.ColMaterialQuality, Empty: true})
	assert.ErrorIs(t, err, ErrNoData)
	_, err = PNG(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLabelsFor(t *testing.T) {
	l := LabelsFor(models.ColMaterialQuality)
	assert.Equal(t, Labels{Title: "Material quality ratings", XLabel: "Quality level", YLabel: "Number of responses"}, l)

	l = LabelsFor(models.ColSiteSafety)
	assert.Equal(t, "Site safety", l.XLabel)
	assert.Equal(t, "Site safety ratings", l.Title)
}

func TestCountTicks(t *testing.T) {
	ticks := countTicks(3)
	require.Len(t, ticks, 4)
	assert.Equal(t, "0", ticks[0].Label)
	assert.Equal(t, "3", ticks[3].Label)

	ticks = countTicks(95)
	assert.LessOrEqual(t, len(ticks), maxYAxisTicks+2)
	assert.Equal(t, 95.0, ticks[len(ticks)-1].Value)
}
