package view

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"vedur/internal/elements"
	"vedur/internal/locations"
	"vedur/internal/types"
)

func newTestView(t *testing.T) *View {
	t.Helper()
	f, err := NewFormatter("is-IS", "")
	require.NoError(t, err)
	return New(f)
}

func point(ts string, celsius, mm float64) types.ForecastPoint {
	t, _ := time.Parse("2006-01-02T15:04", ts)
	return types.ForecastPoint{
		Time:          t,
		Temperature:   types.NewTemperatureFromCelsius(celsius),
		Precipitation: types.NewPrecipitationFromMm(mm),
	}
}

func TestView_Results(t *testing.T) {
	v := newTestView(t)
	loc := types.Location{Title: "Reykjavík", Latitude: 64.1355, Longitude: -21.8954}

	points := []types.ForecastPoint{
		point("2024-01-15T00:00", -1.5, 0),
		point("2024-01-15T01:00", -2, 0.3),
		point("2024-01-15T02:00", 0.4, 1.2),
	}

	section := v.Results(loc, points)

	heading := elements.Find(section, elements.ByTag("h2"))
	require.Len(t, heading, 1)
	assert.Equal(t, "Niðurstöður fyrir: Reykjavík", elements.TextContent(heading[0]))

	tables := elements.Find(section, elements.ByTag("table"))
	require.Len(t, tables, 1)
	assert.True(t, elements.HasClass(tables[0], "forecast"))

	rows := elements.Find(tables[0], elements.ByTag("tr"))
	require.Len(t, rows, len(points)+1)

	headers := elements.Find(rows[0], elements.ByTag("th"))
	require.Len(t, headers, 3)
	assert.Equal(t, "Tími", elements.TextContent(headers[0]))
	assert.Equal(t, "Hiti", elements.TextContent(headers[1]))
	assert.Equal(t, "Úrkoma", elements.TextContent(headers[2]))

	want := [][]string{
		{"15.01.2024 00:00", "-1.5°C", "0"},
		{"15.01.2024 01:00", "-2°C", "0.3"},
		{"15.01.2024 02:00", "0.4°C", "1.2"},
	}
	for i, row := range rows[1:] {
		cells := elements.Find(row, elements.ByTag("td"))
		require.Len(t, cells, 3)
		for j, cell := range cells {
			assert.Equal(t, want[i][j], elements.TextContent(cell), "row %d cell %d", i, j)
		}
	}
}

func TestView_ResultsEmpty(t *testing.T) {
	v := newTestView(t)

	section := v.Results(types.Location{Title: "Tokyo"}, nil)

	rows := elements.Find(section, elements.ByTag("tr"))
	assert.Len(t, rows, 1)
}

func TestView_LoadingAndError(t *testing.T) {
	v := newTestView(t)

	assert.Equal(t, "Leita...", elements.TextContent(v.Loading()))

	msg := elements.TextContent(v.Error(errors.New("X")))
	assert.Equal(t, "Villa: X", msg)
}

func TestNodeRegion_Replace(t *testing.T) {
	v := newTestView(t)
	container := elements.El("div", elements.Attrs{"class": "output"})
	region := NewNodeRegion(container)

	region.Replace(v.Loading())
	region.Replace(v.Error(errors.New("boom")))

	assert.Equal(t, "Villa: boom", elements.TextContent(container))
	require.NotNil(t, container.FirstChild)
	assert.Nil(t, container.FirstChild.NextSibling)

	region.Replace(nil)
	assert.Nil(t, container.FirstChild)
}

func TestView_Shell(t *testing.T) {
	v := newTestView(t)
	catalog, err := locations.NewCatalog(locations.Defaults)
	require.NoError(t, err)

	page := v.Shell(catalog.All())

	h1 := elements.Find(page.Document, elements.ByTag("h1"))
	require.Len(t, h1, 1)
	assert.Equal(t, "Veðrið", elements.TextContent(h1[0]))

	buttons := elements.Find(page.Document, func(n *html.Node) bool {
		return elements.HasClass(n, "locations__button")
	})
	require.Len(t, buttons, len(locations.Defaults)+1)

	assert.Equal(t, "Mín staðsetning", elements.TextContent(buttons[0]))
	value, _ := elements.Attr(buttons[0], "value")
	assert.Equal(t, locations.CurrentSlug, value)

	assert.Equal(t, "Reykjavík", elements.TextContent(buttons[1]))
	value, _ = elements.Attr(buttons[1], "value")
	assert.Equal(t, "reykjavik", value)

	outputs := elements.Find(page.Document, func(n *html.Node) bool {
		return elements.HasClass(n, OutputClass)
	})
	require.Len(t, outputs, 1)
	assert.Same(t, outputs[0], page.Output.Node())
	assert.Nil(t, outputs[0].FirstChild)

	rendered, err := page.Render()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rendered, "<!DOCTYPE html>"))
	assert.Contains(t, rendered, `<div class="output"></div>`)
}

func TestAssets_ScriptShowsLoadingBeforePositionRequest(t *testing.T) {
	data, err := fs.ReadFile(Assets, "assets/search.js")
	require.NoError(t, err)
	script := string(data)

	loading := strings.Index(script, "showLoading();")
	request := strings.Index(script, "navigator.geolocation.getCurrentPosition(")
	require.NotEqual(t, -1, loading)
	require.NotEqual(t, -1, request)
	assert.Less(t, loading, request)
	assert.Contains(t, script, `"`+LoadingText+`"`)
}

func TestAssets(t *testing.T) {
	for _, name := range []string{"assets/styles.css", "assets/search.js"} {
		data, err := fs.ReadFile(Assets, name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data)
	}
}
