package table

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/tj/assert"

	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/awdb"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/model"
)

func TestFlattenDailyMonth(t *testing.T) {
	// One daily value per day of January 2023 must come out as exactly one
	// row per calendar day, values carried verbatim.
	data := januaryData(t)

	rows, err := Flatten(data)
	assert.Nil(t, err)
	assert.Equal(t, 31, len(rows))

	for i, row := range rows {
		assert.Equal(t, "ABC:01:SNTL", row.StationTriplet)
		assert.Equal(t, "WTEQ", row.ElementCode)
		assert.Equal(t, "DAILY", row.Duration)
		assert.Equal(t, "in", row.Unit)
		assert.Equal(t, time.Date(2023, time.January, i+1, 0, 0, 0, 0, time.UTC), row.Date)
		assert.NotNil(t, row.Value)
		assert.Equal(t, float64(i), *row.Value)
	}
}

func TestFlattenRowCountMatchesSourceValues(t *testing.T) {
	data := []awdb.StationData{
		{
			StationTriplet: "713:CO:SNTL",
			Data: []awdb.ElementData{
				{StationElement: dailyElement("WTEQ", "in"), Values: dailyValues(t, "2023-01-01", 5)},
				{StationElement: dailyElement("PREC", "in"), Values: dailyValues(t, "2023-01-01", 3)},
			},
		},
		{
			StationTriplet: "618:CO:SNTL",
			Data: []awdb.ElementData{
				{StationElement: dailyElement("WTEQ", "in"), Values: dailyValues(t, "2023-02-01", 7)},
			},
		},
	}

	rows, err := Flatten(data)
	assert.Nil(t, err)
	assert.Equal(t, 5+3+7, len(rows))
}

func TestFlattenPreservesMissingValues(t *testing.T) {
	v := 7.2
	data := []awdb.StationData{
		{
			StationTriplet: "713:CO:SNTL",
			Data: []awdb.ElementData{
				{
					StationElement: dailyElement("WTEQ", "in"),
					Values: []awdb.ElementValue{
						{Date: "2023-01-01", Value: &v},
						{Date: "2023-01-02"}, // station reported no reading
						{Date: "2023-01-03", Value: &v},
					},
				},
			},
		},
	}

	rows, err := Flatten(data)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(rows))
	assert.NotNil(t, rows[0].Value)
	assert.Nil(t, rows[1].Value)
	assert.NotNil(t, rows[2].Value)
}

func TestFlattenMonthlyValues(t *testing.T) {
	v := 52300.0
	data := []awdb.StationData{
		{
			StationTriplet: "1040:CO:BOR",
			Data: []awdb.ElementData{
				{
					StationElement: awdb.StationElement{ElementCode: "RESC", DurationName: "MONTHLY", OriginalUnitCode: "af"},
					Values: []awdb.ElementValue{
						{Year: 2023, Month: 4, Value: &v},
						{Year: 2023, Month: 5, Value: &v},
					},
				},
			},
		},
	}

	rows, err := Flatten(data)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(rows))
	assert.Equal(t, time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC), rows[1].Date)
	assert.Equal(t, "af", rows[0].Unit)
}

func TestFlattenEmptyResultIsEmptyTable(t *testing.T) {
	rows, err := Flatten(nil)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(rows))

	rows, err = Flatten([]awdb.StationData{{StationTriplet: "713:CO:SNTL", Data: []awdb.ElementData{}}})
	assert.Nil(t, err)
	assert.Equal(t, 0, len(rows))
}

func TestFlattenIsDeterministic(t *testing.T) {
	data := januaryData(t)

	first, err := Flatten(data)
	assert.Nil(t, err)
	second, err := Flatten(data)
	assert.Nil(t, err)

	assert.Equal(t, first, second)
}

func TestFlattenBadTimestampProducesNoPartialTable(t *testing.T) {
	v := 1.0
	data := []awdb.StationData{
		{
			StationTriplet: "713:CO:SNTL",
			Data: []awdb.ElementData{
				{
					StationElement: dailyElement("WTEQ", "in"),
					Values: []awdb.ElementValue{
						{Date: "2023-01-01", Value: &v},
						{Date: "not-a-date", Value: &v},
					},
				},
			},
		},
	}

	rows, err := Flatten(data)

	var formatErr *awdb.DataFormatError
	assert.True(t, errors.As(err, &formatErr))
	assert.Nil(t, rows)
}

func TestMeltForecasts(t *testing.T) {
	forecasts := []awdb.ForecastData{
		{
			StationTriplet: "09085000:CO:USGS",
			Data: []awdb.Forecast{
				{
					ElementCode:     "SRVO",
					ForecastPeriod:  []string{"04-01", "07-31"},
					PublicationDate: "2024-01-01",
					UnitCode:        "kaf",
					ForecastValues:  map[string]float64{"90": 60, "10": 120, "50": 90},
				},
				{
					// different target period, must be filtered out
					ElementCode:     "SRVO",
					ForecastPeriod:  []string{"04-01", "09-30"},
					PublicationDate: "2024-01-01",
					UnitCode:        "kaf",
					ForecastValues:  map[string]float64{"50": 110},
				},
			},
		},
	}

	rows, err := MeltForecasts(forecasts, AprilJuly)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(rows))

	// exceedances come out in ascending percentage order
	assert.Equal(t, "10%", rows[0].Exceedance)
	assert.Equal(t, 120.0, rows[0].Value)
	assert.Equal(t, "50%", rows[1].Exceedance)
	assert.Equal(t, "90%", rows[2].Exceedance)

	pub := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, row := range rows {
		assert.Equal(t, "09085000:CO:USGS", row.StationTriplet)
		assert.Equal(t, pub, row.PublicationDate)
		assert.Equal(t, "kaf", row.Unit)
	}
}

func TestMeltForecastsEmpty(t *testing.T) {
	rows, err := MeltForecasts(nil, AprilJuly)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(rows))
}

func TestMeltForecastsBadPublicationDate(t *testing.T) {
	forecasts := []awdb.ForecastData{
		{
			StationTriplet: "09085000:CO:USGS",
			Data: []awdb.Forecast{
				{
					ForecastPeriod:  []string{"04-01", "07-31"},
					PublicationDate: "January 2024",
					ForecastValues:  map[string]float64{"50": 90},
				},
			},
		},
	}

	rows, err := MeltForecasts(forecasts, AprilJuly)

	var formatErr *awdb.DataFormatError
	assert.True(t, errors.As(err, &formatErr))
	assert.Nil(t, rows)
}

// FlattenFromJSON exercises the full decode-then-flatten path the client
// uses, with the wire shape AWDB actually returns.
func TestFlattenFromJSON(t *testing.T) {
	const body = `[
	  {
	    "stationTriplet": "ABC:01:SNTL",
	    "data": [
	      {
	        "stationElement": {"elementCode": "WTEQ", "durationName": "DAILY", "originalUnitCode": "in"},
	        "values": [
	          {"date": "2023-01-01", "value": 4.1},
	          {"date": "2023-01-02", "value": 4.3}
	        ]
	      }
	    ]
	  }
	]`

	var data []awdb.StationData
	assert.Nil(t, json.Unmarshal([]byte(body), &data))

	rows, err := Flatten(data)
	assert.Nil(t, err)
	assert.Equal(t, []model.Observation{
		{
			StationTriplet: "ABC:01:SNTL",
			ElementCode:    "WTEQ",
			Duration:       "DAILY",
			Date:           time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
			Value:          float64Ptr(4.1),
			Unit:           "in",
		},
		{
			StationTriplet: "ABC:01:SNTL",
			ElementCode:    "WTEQ",
			Duration:       "DAILY",
			Date:           time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC),
			Value:          float64Ptr(4.3),
			Unit:           "in",
		},
	}, rows)
}

func januaryData(t *testing.T) []awdb.StationData {
	t.Helper()

	return []awdb.StationData{
		{
			StationTriplet: "ABC:01:SNTL",
			Data: []awdb.ElementData{
				{StationElement: dailyElement("WTEQ", "in"), Values: dailyValues(t, "2023-01-01", 31)},
			},
		},
	}
}

func dailyElement(code, unit string) awdb.StationElement {
	return awdb.StationElement{ElementCode: code, DurationName: "DAILY", OriginalUnitCode: unit}
}

// DailyValues builds n consecutive daily readings starting at the given
// date, valued 0, 1, 2, ...
func dailyValues(t *testing.T, from string, n int) []awdb.ElementValue {
	t.Helper()

	start, err := time.Parse("2006-01-02", from)
	assert.Nil(t, err)

	values := make([]awdb.ElementValue, 0, n)
	for i := 0; i < n; i++ {
		v := float64(i)
		values = append(values, awdb.ElementValue{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Value: &v,
		})
	}

	return values
}

func float64Ptr(v float64) *float64 {
	return &v
}
