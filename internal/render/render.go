// Package render produces the standalone basin map page: a Leaflet map with
// one marker per station, Vega-Lite chart popups and an optional basin
// boundary GeoJSON overlay.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/model"
)

//go:embed templates
var templatesFS embed.FS

var mapTmpl = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

var tooltipPrinter = message.NewPrinter(language.AmericanEnglish)

// MapPage is the view model for the basin map template.
type MapPage struct {
	Title           string
	CenterLatitude  float64
	CenterLongitude float64
	Zoom            int
	BasinName       string
	// BasinGeoJSON is the raw boundary document; empty disables the overlay.
	BasinGeoJSON template.JS
	Markers      []Marker
}

// Marker is one station on the map.
type Marker struct {
	Triplet   string  `json:"triplet"`
	Name      string  `json:"name"`
	Tooltip   string  `json:"tooltip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Icon      string  `json:"icon"`
	Color     string  `json:"color"`
	// ChartSpec is a Vega-Lite document for the popup; nil means "No data!".
	ChartSpec json.RawMessage `json:"chartSpec"`
}

// Map writes the rendered basin map page to w.
func Map(w io.Writer, page *MapPage) error {
	markers, err := json.Marshal(page.Markers)
	if err != nil {
		return fmt.Errorf("failed to marshal markers: %w", err)
	}

	data := struct {
		*MapPage
		MarkersJSON template.JS
	}{
		MapPage:     page,
		MarkersJSON: template.JS(markers),
	}

	return mapTmpl.ExecuteTemplate(w, "map.html", data)
}

// NewMarker builds the map marker for a station: network icon and color,
// name/elevation tooltip and the popup chart for its observation rows. The
// forecast rows are only consulted for streamflow forecast points.
func NewMarker(station *model.Station, obs []model.Observation, forecasts []model.ForecastRow) Marker {
	icon, color := markerStyle(station.NetworkCode)

	spec, err := popupChartSpec(station, obs, forecasts)
	if err != nil {
		// A station whose chart cannot be built still belongs on the map.
		spec = nil
	}

	return Marker{
		Triplet:   station.Triplet,
		Name:      station.Name,
		Tooltip:   stationTooltip(station),
		Latitude:  station.Latitude,
		Longitude: station.Longitude,
		Icon:      icon,
		Color:     color,
		ChartSpec: spec,
	}
}

// markerStyle maps a network code to a Font Awesome icon name and color.
func markerStyle(network string) (icon, color string) {
	icons := map[string]string{"SNTL": "cloud", "BOR": "droplet", "USGS": "water"}
	colors := map[string]string{"SNTL": "blue", "BOR": "green", "USGS": "red"}

	icon, ok := icons[network]
	if !ok {
		icon = "location-dot"
	}
	color, ok = colors[network]
	if !ok {
		color = "black"
	}

	return icon, color
}

func stationTooltip(station *model.Station) string {
	if station.Elevation == 0 {
		return fmt.Sprintf("%s (%s)", station.Name, station.Triplet)
	}

	elevation := tooltipPrinter.Sprint(number.Decimal(station.Elevation, number.MaxFractionDigits(0)))

	return fmt.Sprintf("%s (%s), %s ft", station.Name, station.Triplet, elevation)
}
