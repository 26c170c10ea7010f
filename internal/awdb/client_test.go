package awdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestGetStations(t *testing.T) {
	is := is.New(t)
	server := newTestServer(t, "/stations", stationsTestData)
	defer server.Close()

	client := NewClient(server.URL)

	stations, err := client.GetStations(context.Background(), StationsQuery{
		Networks:              []string{"SNTL"},
		ReturnStationElements: true,
	})
	is.NoErr(err)
	is.Equal(len(stations), 1)
	is.Equal(stations[0].StationTriplet, "713:CO:SNTL")
	is.Equal(stations[0].Name, "Ivanhoe")
	is.Equal(stations[0].NetworkCode, "SNTL")
	is.Equal(len(stations[0].StationElems), 1)
	is.Equal(stations[0].StationElems[0].ElementCode, "WTEQ")
	is.Equal(stations[0].StationElems[0].OriginalUnitCode, "in")
}

func TestGetStationsSendsQueryParameters(t *testing.T) {
	is := is.New(t)

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.GetStations(context.Background(), StationsQuery{
		Networks:        []string{"SNTL", "USGS"},
		IncludeInactive: true,
	})
	is.NoErr(err)

	parsed, err := url.ParseQuery(gotQuery)
	is.NoErr(err)
	is.Equal(parsed.Get("stationTriplets"), "*:*:SNTL,*:*:USGS")
	is.Equal(parsed.Get("activeOnly"), "false")
}

func TestGetData(t *testing.T) {
	is := is.New(t)
	server := newTestServer(t, "/data", dataTestData)
	defer server.Close()

	client := NewClient(server.URL)

	data, err := client.GetData(context.Background(), DataQuery{
		Triplets:  []StationTriplet{{"713", "CO", "SNTL"}},
		Elements:  []string{"WTEQ"},
		Duration:  "DAILY",
		BeginDate: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, time.January, 3, 0, 0, 0, 0, time.UTC),
	})
	is.NoErr(err)
	is.Equal(len(data), 1)
	is.Equal(data[0].StationTriplet, "713:CO:SNTL")
	is.Equal(len(data[0].Data), 1)
	is.Equal(len(data[0].Data[0].Values), 3)
	is.Equal(*data[0].Data[0].Values[0].Value, 7.2)
	is.Equal(data[0].Data[0].Values[1].Value, (*float64)(nil)) // missing reading stays nil
}

func TestGetDataInvalidQuery(t *testing.T) {
	is := is.New(t)

	client := NewClient("http://example.invalid")

	_, err := client.GetData(context.Background(), DataQuery{
		Triplets: []StationTriplet{{"713", "CO", "SNTL"}},
		Elements: []string{"WTEQ"},
		Duration: "DAILY",
		// swapped date bounds
		BeginDate: time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	var userErr *UserInputError
	is.True(errors.As(err, &userErr))
	is.Equal(userErr.Param, "endDate")
}

func TestGetForecasts(t *testing.T) {
	is := is.New(t)
	server := newTestServer(t, "/forecasts", forecastsTestData)
	defer server.Close()

	client := NewClient(server.URL)

	forecasts, err := client.GetForecasts(context.Background(), ForecastsQuery{
		Triplets:             []StationTriplet{{"09085000", "CO", "USGS"}},
		ElementCodes:         []string{"SRVO"},
		BeginPublicationDate: time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC),
		EndPublicationDate:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
	})
	is.NoErr(err)
	is.Equal(len(forecasts), 1)
	is.Equal(forecasts[0].StationTriplet, "09085000:CO:USGS")
	is.Equal(len(forecasts[0].Data), 1)
	is.Equal(forecasts[0].Data[0].ForecastValues["50"], 90.0)
}

func TestGetReferenceData(t *testing.T) {
	is := is.New(t)
	server := newTestServer(t, "/reference-data", referenceTestData)
	defer server.Close()

	client := NewClient(server.URL)

	ref, err := client.GetReferenceData(context.Background())
	is.NoErr(err)
	is.Equal(len(ref.Elements), 1)
	is.Equal(ref.Elements[0].Code, "WTEQ")
	is.Equal(len(ref.Networks), 1)
}

func TestMalformedResponseIsDataFormatError(t *testing.T) {
	is := is.New(t)

	// Truncated body: the decode must fail as a whole, never yielding a
	// partial result.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"stationTriplet": "713:CO:SNTL", "data": [{"values": [{"date"`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	data, err := client.GetData(context.Background(), validDataQuery())

	var formatErr *DataFormatError
	is.True(errors.As(err, &formatErr))
	is.Equal(data, nil)
}

func TestMissingTripletIsDataFormatError(t *testing.T) {
	is := is.New(t)

	server := newTestServer(t, "/data", `[{"data": []}]`)
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.GetData(context.Background(), validDataQuery())

	var formatErr *DataFormatError
	is.True(errors.As(err, &formatErr))
}

func TestUnexpectedStatusIsNetworkError(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.GetData(context.Background(), validDataQuery())

	var netErr *NetworkError
	is.True(errors.As(err, &netErr))
}

func TestUnreachableServerIsNetworkError(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL)

	_, err := client.GetData(context.Background(), validDataQuery())

	var netErr *NetworkError
	is.True(errors.As(err, &netErr))
}

func newTestServer(t *testing.T, wantPath, body string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			t.Errorf("unexpected request path %s, want %s", r.URL.Path, wantPath)
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func validDataQuery() DataQuery {
	return DataQuery{
		Triplets:  []StationTriplet{{"713", "CO", "SNTL"}},
		Elements:  []string{"WTEQ"},
		Duration:  "DAILY",
		BeginDate: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
}

const stationsTestData = `[
  {
    "stationTriplet": "713:CO:SNTL",
    "stationId": "713",
    "stateCode": "CO",
    "networkCode": "SNTL",
    "name": "Ivanhoe",
    "huc": "140100041901",
    "elevation": 10400.0,
    "latitude": 39.29,
    "longitude": -106.55,
    "stationElements": [
      {
        "elementCode": "WTEQ",
        "ordinal": 1,
        "durationName": "DAILY",
        "originalUnitCode": "in",
        "storedUnitCode": "in",
        "beginDate": "1979-10-01 00:00",
        "endDate": "2100-01-01 00:00"
      }
    ]
  }
]`

const dataTestData = `[
  {
    "stationTriplet": "713:CO:SNTL",
    "data": [
      {
        "stationElement": {
          "elementCode": "WTEQ",
          "durationName": "DAILY",
          "originalUnitCode": "in"
        },
        "values": [
          {"date": "2023-01-01", "value": 7.2},
          {"date": "2023-01-02"},
          {"date": "2023-01-03", "value": 7.6}
        ]
      }
    ]
  }
]`

const forecastsTestData = `[
  {
    "stationTriplet": "09085000:CO:USGS",
    "forecastPointName": "Roaring Fork River at Glenwood Springs",
    "data": [
      {
        "elementCode": "SRVO",
        "forecastPeriod": ["04-01", "07-31"],
        "publicationDate": "2024-01-01",
        "unitCode": "kaf",
        "forecastValues": {"10": 120.0, "50": 90.0, "90": 60.0}
      }
    ]
  }
]`

const referenceTestData = `{
  "elements": [{"code": "WTEQ", "name": "Snow Water Equivalent", "storedUnitCode": "in"}],
  "durations": [{"code": "DAILY", "name": "Daily"}],
  "networks": [{"code": "SNTL", "name": "Snow Telemetry"}]
}`
