package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/model"
)

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

const chartDateLayout = "2006-01-02"

// popupChartSpec picks the chart for a station: a daily line for snow
// telemetry sites, a forecast scatter plus cumulative observed volume for
// streamflow forecast points, a monthly bar otherwise.
// A station without observations gets no chart, only a "No data!" popup.
func popupChartSpec(station *model.Station, obs []model.Observation, forecasts []model.ForecastRow) (json.RawMessage, error) {
	if len(obs) == 0 {
		return nil, nil
	}

	label := fmt.Sprintf("%s (%s)", obs[0].ElementCode, obs[0].Unit)

	var spec map[string]interface{}
	switch {
	case station.NetworkCode == "SNTL":
		spec = lineSpec(obs, "Snow Water Equivalent", label)
	case obs[0].ElementCode == "SRVO":
		spec = forecastSpec(obs, forecasts)
	default:
		spec = barSpec(obs, "Observed Data", label)
	}

	return json.Marshal(spec)
}

func observationValues(obs []model.Observation, label string) []map[string]interface{} {
	values := make([]map[string]interface{}, 0, len(obs))
	for _, o := range obs {
		row := map[string]interface{}{
			"Date": o.Date.Format(chartDateLayout),
			label:  nil,
		}
		if o.Value != nil {
			row[label] = *o.Value
		}

		values = append(values, row)
	}

	return values
}

func lineSpec(obs []model.Observation, title, label string) map[string]interface{} {
	return map[string]interface{}{
		"$schema": vegaLiteSchema,
		"title":   title,
		"width":   "container",
		"data":    map[string]interface{}{"values": observationValues(obs, label)},
		"mark":    "line",
		"encoding": map[string]interface{}{
			"x": map[string]interface{}{"field": "Date", "type": "temporal"},
			"y": map[string]interface{}{"field": label, "type": "quantitative"},
		},
	}
}

func barSpec(obs []model.Observation, title, label string) map[string]interface{} {
	return map[string]interface{}{
		"$schema": vegaLiteSchema,
		"title":   title,
		"width":   "container",
		"data":    map[string]interface{}{"values": observationValues(obs, label)},
		"mark":    "bar",
		"encoding": map[string]interface{}{
			"x": map[string]interface{}{
				"field": "Date",
				"type":  "temporal",
				"axis":  map[string]interface{}{"tickCount": "month", "format": "%b %Y"},
			},
			"y": map[string]interface{}{"field": label, "type": "quantitative"},
		},
	}
}

// forecastSpec layers the published exceedance values over the cumulative
// observed April-July volume, so forecasts can be read against the actual
// runoff season. Monthly SRVO values are reported in acre-feet and
// the forecast axis in thousand acre-feet, hence the /1000.
func forecastSpec(obs []model.Observation, forecasts []model.ForecastRow) map[string]interface{} {
	const forecastLabel = "APR-JUL SRVO (kaf)"

	forecastValues := make([]map[string]interface{}, 0, len(forecasts))
	for _, f := range forecasts {
		forecastValues = append(forecastValues, map[string]interface{}{
			"Date":        f.PublicationDate.Format(chartDateLayout),
			"Exceedance":  f.Exceedance,
			forecastLabel: f.Value,
		})
	}

	var cumulative float64
	var observedValues []map[string]interface{}
	for _, o := range obs {
		if o.Value == nil || !isRunoffMonth(o.Date.Month()) {
			continue
		}

		cumulative += *o.Value / 1000
		observedValues = append(observedValues, map[string]interface{}{
			"Date":            o.Date.Format(chartDateLayout),
			"Observed Volume": cumulative,
		})
	}

	monthAxis := map[string]interface{}{"tickCount": "month", "format": "%b %Y"}

	return map[string]interface{}{
		"$schema": vegaLiteSchema,
		"title":   "Forecast Data",
		"width":   "container",
		"layer": []map[string]interface{}{
			{
				"data": map[string]interface{}{"values": forecastValues},
				"mark": map[string]interface{}{"type": "circle", "size": 60},
				"encoding": map[string]interface{}{
					"x":       map[string]interface{}{"field": "Date", "type": "temporal", "axis": monthAxis},
					"y":       map[string]interface{}{"field": forecastLabel, "type": "quantitative"},
					"color":   map[string]interface{}{"field": "Exceedance", "type": "nominal"},
					"tooltip": []map[string]interface{}{{"field": forecastLabel, "type": "quantitative"}},
				},
			},
			{
				"data": map[string]interface{}{"values": observedValues},
				"mark": "line",
				"encoding": map[string]interface{}{
					"x": map[string]interface{}{"field": "Date", "type": "temporal", "axis": monthAxis},
					"y": map[string]interface{}{"field": "Observed Volume", "type": "quantitative"},
				},
			},
		},
	}
}

func isRunoffMonth(m time.Month) bool {
	return m >= time.April && m <= time.July
}
