package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/awdb"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/logger"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/model"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/render"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/table"
)

// The element/duration combinations the basin map presents: daily snowpack,
// monthly reservoir storage, monthly observed streamflow volume.
var basinElementSpecs = []struct {
	Element  string
	Duration string
}{
	{"WTEQ", "DAILY"},
	{"RESC", "MONTHLY"},
	{"SRVO", "MONTHLY"},
}

var geoJSONClient = &http.Client{Timeout: 30 * time.Second}

// GetObservations fetches one element time series for one station and
// flattens it into observation rows. Zero date bounds default to the running
// water year.
func (s *BasinService) GetObservations(ctx context.Context, req *model.ObservationsRequest) ([]*model.Observation, error) {
	triplet, err := awdb.ParseStationTriplet(req.StationTriplet)
	if err != nil {
		return nil, err
	}

	element := req.ElementCode
	if element == "" {
		return nil, &awdb.UserInputError{Param: "element", Reason: "element code is required"}
	}

	duration := req.Duration
	if duration == "" {
		duration = "DAILY"
	}

	begin, end := req.BeginDate, req.EndDate
	if begin.IsZero() && end.IsZero() {
		begin, end = waterYearRange(s.cfg.Now())
	}

	q := awdb.DataQuery{
		Triplets:  []awdb.StationTriplet{triplet},
		Elements:  []string{element},
		Duration:  duration,
		BeginDate: begin,
		EndDate:   end,
		PeriodRef: awdb.PeriodRefStart,
	}

	data, err := s.client.GetData(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to get station data: %w", err)
	}

	rows, err := table.Flatten(data)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Observation, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}

	return out, nil
}

// GetForecasts fetches the streamflow volume forecasts published for a
// station during the running water year and melts them into one row per
// publication and exceedance percentage.
func (s *BasinService) GetForecasts(ctx context.Context, req *model.ForecastsRequest) ([]*model.ForecastRow, error) {
	triplet, err := awdb.ParseStationTriplet(req.StationTriplet)
	if err != nil {
		return nil, err
	}

	begin, end := waterYearRange(s.cfg.Now())

	q := awdb.ForecastsQuery{
		Triplets:             []awdb.StationTriplet{triplet},
		ElementCodes:         []string{"SRVO"},
		BeginPublicationDate: begin,
		EndPublicationDate:   end,
	}

	forecasts, err := s.client.GetForecasts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecasts: %w", err)
	}

	rows, err := table.MeltForecasts(forecasts, table.AprilJuly)
	if err != nil {
		return nil, err
	}

	out := make([]*model.ForecastRow, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}

	return out, nil
}

// RenderBasinMap assembles the full basin snapshot and writes the rendered
// map page: every station of interest becomes a marker with its water-year
// chart popup, plus the basin boundary overlay.
func (s *BasinService) RenderBasinMap(ctx context.Context, w io.Writer) error {
	stations, err := s.basinStations(ctx)
	if err != nil {
		return err
	}

	markers := make([]render.Marker, 0, len(stations))
	for _, st := range stations {
		marker, err := s.stationMarker(ctx, st)
		if err != nil {
			return err
		}

		markers = append(markers, marker)
	}

	geoJSON, err := s.fetchBasinGeoJSON(ctx)
	if err != nil {
		return err
	}

	page := &render.MapPage{
		Title:           fmt.Sprintf("%s basin", s.cfg.BasinName),
		CenterLatitude:  s.cfg.CenterLatitude,
		CenterLongitude: s.cfg.CenterLongitude,
		Zoom:            s.cfg.Zoom,
		BasinName:       s.cfg.BasinName,
		BasinGeoJSON:    template.JS(geoJSON),
		Markers:         markers,
	}

	return render.Map(w, page)
}

// basinStations collects the stations the map presents: for every element
// spec, the basin's stations reporting that element, active or not. Gage
// metadata is additionally narrowed to forecast points named after the
// basin, so neighboring rivers stay off the map.
func (s *BasinService) basinStations(ctx context.Context) ([]*model.Station, error) {
	base, err := s.GetStations(ctx, &model.StationsRequest{})
	if err != nil {
		return nil, err
	}
	if len(base) == 0 {
		return nil, ErrNoStations
	}

	triplets := make([]awdb.StationTriplet, 0, len(base))
	for _, st := range base {
		t, err := awdb.ParseStationTriplet(st.Triplet)
		if err != nil {
			return nil, &awdb.DataFormatError{Err: fmt.Errorf("station list: %w", err)}
		}

		triplets = append(triplets, t)
	}

	var stations []*model.Station
	for _, spec := range basinElementSpecs {
		q := awdb.StationsQuery{
			Triplets:                    triplets,
			Elements:                    []string{spec.Element},
			Durations:                   []string{spec.Duration},
			IncludeInactive:             true,
			ReturnStationElements:       true,
			ReturnForecastPointMetadata: true,
			ReturnReservoirMetadata:     true,
		}

		metadata, err := s.client.GetStations(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s station metadata: %w", spec.Element, err)
		}

		for _, m := range metadata {
			if spec.Element == "SRVO" && s.cfg.BasinName != "" &&
				!strings.Contains(strings.ToLower(m.Name), strings.ToLower(s.cfg.BasinName)) {
				continue
			}

			stations = append(stations, toModelStation(m))
		}
	}

	return stations, nil
}

// stationMarker fetches the station's water-year series for its first
// station element and builds the map marker. A station that yields no data
// still gets a marker, with a "No data!" popup.
func (s *BasinService) stationMarker(ctx context.Context, st *model.Station) (render.Marker, error) {
	if len(st.Elements) == 0 {
		return render.NewMarker(st, nil, nil), nil
	}

	elem := st.Elements[0]
	obs, err := s.GetObservations(ctx, &model.ObservationsRequest{
		StationTriplet: st.Triplet,
		ElementCode:    elem.ElementCode,
		Duration:       elem.DurationName,
	})
	if err != nil {
		return render.Marker{}, err
	}

	rows := make([]model.Observation, 0, len(obs))
	for _, o := range obs {
		rows = append(rows, *o)
	}

	var forecastRows []model.ForecastRow
	if elem.ElementCode == "SRVO" {
		forecasts, err := s.GetForecasts(ctx, &model.ForecastsRequest{StationTriplet: st.Triplet})
		if err != nil {
			return render.Marker{}, err
		}

		forecastRows = make([]model.ForecastRow, 0, len(forecasts))
		for _, f := range forecasts {
			forecastRows = append(forecastRows, *f)
		}
	}

	return render.NewMarker(st, rows, forecastRows), nil
}

// fetchBasinGeoJSON fetches the boundary overlay document. The overlay is
// optional: no configured URL means no overlay.
func (s *BasinService) fetchBasinGeoJSON(ctx context.Context) (string, error) {
	if s.cfg.BasinGeoJSONURL == "" {
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BasinGeoJSONURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create basin geojson request: %w", err)
	}

	logger.Info(fmt.Sprintf("fetching basin boundary from %s", s.cfg.BasinGeoJSONURL))

	resp, err := geoJSONClient.Do(req)
	if err != nil {
		return "", &awdb.NetworkError{URL: s.cfg.BasinGeoJSONURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &awdb.NetworkError{URL: s.cfg.BasinGeoJSONURL, Err: fmt.Errorf("expected status code 200 but got %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &awdb.NetworkError{URL: s.cfg.BasinGeoJSONURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if !json.Valid(body) {
		return "", &awdb.DataFormatError{URL: s.cfg.BasinGeoJSONURL, Err: fmt.Errorf("basin boundary is not valid JSON")}
	}

	return string(body), nil
}
