package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/umahmood/haversine"

	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/awdb"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/model"
)

var ErrNoStations = errors.New("no stations match the requested filters")

// AWDBClient provides the AWDB queries the service needs.
type AWDBClient interface {
	GetStations(ctx context.Context, q awdb.StationsQuery) ([]awdb.StationMetadata, error)
	GetData(ctx context.Context, q awdb.DataQuery) ([]awdb.StationData, error)
	GetForecasts(ctx context.Context, q awdb.ForecastsQuery) ([]awdb.ForecastData, error)
}

// Config describes the basin the demo presents.
type Config struct {
	// Networks queried when a request does not name its own.
	Networks []string
	// HUCFilter keeps only stations whose HUC starts with this prefix.
	// Empty disables the filter.
	HUCFilter string
	// Map center and zoom for the rendered basin map.
	CenterLatitude  float64
	CenterLongitude float64
	Zoom            int
	// RadiusKm keeps only stations within this distance of the map center.
	// Zero disables the filter.
	RadiusKm float64
	// BasinName labels the GeoJSON overlay layer.
	BasinName string
	// BasinGeoJSONURL is fetched at render time for the boundary overlay.
	// Empty disables the overlay.
	BasinGeoJSONURL string

	// Now is replaceable in tests; nil means time.Now.
	Now func() time.Time
}

// BasinService answers station, observation and forecast queries for one
// river basin. Every call is a one-shot fetch-and-transform; nothing is
// retained between invocations.
type BasinService struct {
	client AWDBClient
	cfg    Config
}

// New creates a new BasinService.
func New(client AWDBClient, cfg Config) *BasinService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &BasinService{
		client: client,
		cfg:    cfg,
	}
}

// GetStations lists stations for the requested networks, filtered by HUC
// prefix and by distance from the configured map center.
func (s *BasinService) GetStations(ctx context.Context, req *model.StationsRequest) ([]*model.Station, error) {
	networks := req.Networks
	if len(networks) == 0 {
		networks = s.cfg.Networks
	}

	q := awdb.StationsQuery{
		Networks:                    networks,
		IncludeInactive:             req.IncludeInactive,
		ReturnStationElements:       true,
		ReturnForecastPointMetadata: true,
		ReturnReservoirMetadata:     true,
	}

	metadata, err := s.client.GetStations(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to get stations: %w", err)
	}

	huc := req.HUC
	if huc == "" {
		huc = s.cfg.HUCFilter
	}

	stations := make([]*model.Station, 0, len(metadata))
	for _, m := range metadata {
		if huc != "" && !strings.HasPrefix(m.HUC, huc) {
			continue
		}
		if !s.withinRadius(m.Latitude, m.Longitude) {
			continue
		}

		stations = append(stations, toModelStation(m))
	}

	return stations, nil
}

// NearestStation finds the station closest to the given coordinates among
// the configured networks.
func (s *BasinService) NearestStation(ctx context.Context, req *model.NearestRequest) (*model.Station, error) {
	stations, err := s.GetStations(ctx, &model.StationsRequest{})
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return nil, ErrNoStations
	}

	return findNearestStation(haversine.Coord{Lat: req.Latitude, Lon: req.Longitude}, stations), nil
}

func findNearestStation(from haversine.Coord, stations []*model.Station) *model.Station {
	var minDistance float64
	minIndex := 0

	for i, st := range stations {
		stCoords := haversine.Coord{Lat: st.Latitude, Lon: st.Longitude}

		_, km := haversine.Distance(from, stCoords)
		if i == 0 || km < minDistance {
			minDistance = km
			minIndex = i
		}
	}

	return stations[minIndex]
}

// withinRadius reports whether a point falls inside the configured radius
// around the map center.
func (s *BasinService) withinRadius(lat, lon float64) bool {
	if s.cfg.RadiusKm <= 0 {
		return true
	}

	center := haversine.Coord{Lat: s.cfg.CenterLatitude, Lon: s.cfg.CenterLongitude}
	_, km := haversine.Distance(center, haversine.Coord{Lat: lat, Lon: lon})

	return km <= s.cfg.RadiusKm
}

func toModelStation(m awdb.StationMetadata) *model.Station {
	elements := make([]model.StationElement, 0, len(m.StationElems))
	for _, e := range m.StationElems {
		elements = append(elements, model.StationElement{
			ElementCode:      e.ElementCode,
			DurationName:     e.DurationName,
			OriginalUnitCode: e.OriginalUnitCode,
			BeginDate:        e.BeginDate,
			EndDate:          e.EndDate,
		})
	}

	return &model.Station{
		Triplet:     m.StationTriplet,
		Name:        m.Name,
		NetworkCode: m.NetworkCode,
		StateCode:   m.StateCode,
		HUC:         m.HUC,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		Elevation:   m.Elevation,
		Elements:    elements,
	}
}

// waterYearRange is the running water year: from the most recent October 1st
// through today.
func waterYearRange(today time.Time) (time.Time, time.Time) {
	start := time.Date(today.Year()-1, time.October, 1, 0, 0, 0, 0, time.UTC)
	if today.Month() > time.September {
		start = time.Date(today.Year(), time.October, 1, 0, 0, 0, 0, time.UTC)
	}

	return start, today
}
