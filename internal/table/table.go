// Package table flattens nested AWDB responses into row-oriented tables.
// Every transformation is a pure function of its input: the same response
// always yields the identical table, and no retained state survives a call.
package table

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/awdb"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/model"
)

const dateLayout = "2006-01-02"

// Flatten turns the nested per-station, per-element arrays of a data
// response into a flat ordered observation sequence. The output holds
// exactly one row per source value, in source order; values the station
// reported without a reading stay in the table with a nil Value. Units are
// carried through as reported, never normalized.
func Flatten(data []awdb.StationData) ([]model.Observation, error) {
	rows := make([]model.Observation, 0, countValues(data))

	for _, station := range data {
		for _, series := range station.Data {
			for _, v := range series.Values {
				ts, err := valueTime(v)
				if err != nil {
					return nil, &awdb.DataFormatError{Err: fmt.Errorf("station %s element %s: %w",
						station.StationTriplet, series.StationElement.ElementCode, err)}
				}

				rows = append(rows, model.Observation{
					StationTriplet: station.StationTriplet,
					ElementCode:    series.StationElement.ElementCode,
					Duration:       series.StationElement.DurationName,
					Date:           ts,
					Value:          v.Value,
					Unit:           series.StationElement.OriginalUnitCode,
				})
			}
		}
	}

	return rows, nil
}

// ForecastPeriod is the begin/end of a forecast target window, as month-day
// strings, e.g. {"04-01", "07-31"} for the April-July runoff season.
type ForecastPeriod struct {
	Begin string
	End   string
}

// AprilJuly is the spring runoff season most SRVO forecasts target.
var AprilJuly = ForecastPeriod{Begin: "04-01", End: "07-31"}

// MeltForecasts reshapes forecast publications into one row per
// (publication date, exceedance percentage) pair, keeping only publications
// for the given forecast period. Exceedance columns are emitted in ascending
// percentage order so the output is deterministic.
func MeltForecasts(forecasts []awdb.ForecastData, period ForecastPeriod) ([]model.ForecastRow, error) {
	var rows []model.ForecastRow

	for _, fp := range forecasts {
		for _, f := range fp.Data {
			if len(f.ForecastPeriod) != 2 || f.ForecastPeriod[0] != period.Begin || f.ForecastPeriod[1] != period.End {
				continue
			}

			pub, err := time.Parse(dateLayout, f.PublicationDate)
			if err != nil {
				return nil, &awdb.DataFormatError{Err: fmt.Errorf("forecast point %s: bad publication date: %w",
					fp.StationTriplet, err)}
			}

			for _, pct := range sortedExceedances(f.ForecastValues) {
				rows = append(rows, model.ForecastRow{
					StationTriplet:  fp.StationTriplet,
					PublicationDate: pub,
					Exceedance:      pct + "%",
					Value:           f.ForecastValues[pct],
					Unit:            f.UnitCode,
				})
			}
		}
	}

	return rows, nil
}

// valueTime resolves the timestamp of a reading: daily series carry a date
// string, monthly series carry year and month.
func valueTime(v awdb.ElementValue) (time.Time, error) {
	if v.Date != "" {
		ts, err := time.Parse(dateLayout, v.Date)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad value date %q: %w", v.Date, err)
		}

		return ts, nil
	}

	if v.Year == 0 || v.Month < 1 || v.Month > 12 {
		return time.Time{}, fmt.Errorf("value has neither a date nor a valid year/month pair")
	}

	return time.Date(v.Year, time.Month(v.Month), 1, 0, 0, 0, 0, time.UTC), nil
}

func sortedExceedances(values map[string]float64) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}

		return a < b
	})

	return keys
}

func countValues(data []awdb.StationData) int {
	var n int
	for _, station := range data {
		for _, series := range station.Data {
			n += len(series.Values)
		}
	}

	return n
}
