package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/awdb"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/logger"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/model"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/service"
)

//go:generate mockgen -source=handlers.go -destination=mock/mock.go BasinService

const dateLayout = "2006-01-02"

// BasinService provides basin service methods.
type BasinService interface {
	GetStations(ctx context.Context, req *model.StationsRequest) ([]*model.Station, error)
	NearestStation(ctx context.Context, req *model.NearestRequest) (*model.Station, error)
	GetObservations(ctx context.Context, req *model.ObservationsRequest) ([]*model.Observation, error)
	GetForecasts(ctx context.Context, req *model.ForecastsRequest) ([]*model.ForecastRow, error)
	RenderBasinMap(ctx context.Context, w io.Writer) error
}

// BasinServer is a server for basin data processing.
type BasinServer struct {
	service BasinService
}

// NewBasinServer creates new BasinServer.
func NewBasinServer(service BasinService) *BasinServer {
	return &BasinServer{service}
}

// BasinMapHandler serves the rendered basin map page.
func (s *BasinServer) BasinMapHandler(w http.ResponseWriter, r *http.Request) {
	// Render into a buffer first so an upstream failure never leaves a
	// half-written page behind a 200.
	var buf bytes.Buffer
	if err := s.service.RenderBasinMap(r.Context(), &buf); err != nil {
		logger.Error(fmt.Errorf("failed to render basin map: %v", err))
		respondErr(w, statusFromError(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(fmt.Errorf("failed to write basin map response: %v", err))
	}
}

// GetStationsHandler handles station listing requests.
func (s *BasinServer) GetStationsHandler(w http.ResponseWriter, r *http.Request) {
	req := validateStationsParams(r.URL.Query())

	stations, err := s.service.GetStations(r.Context(), req)
	if err != nil {
		logger.Error(fmt.Errorf("failed to get stations: %v", err))
		respondErr(w, statusFromError(err), err)
		return
	}

	respond(w, http.StatusOK, stations)
}

// NearestStationHandler handles nearest station requests.
func (s *BasinServer) NearestStationHandler(w http.ResponseWriter, r *http.Request) {
	req, err := validateNearestParams(r.URL.Query())
	if err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	station, err := s.service.NearestStation(r.Context(), req)
	if err != nil {
		logger.Error(fmt.Errorf("failed to get nearest station: %v", err))
		respondErr(w, statusFromError(err), err)
		return
	}

	respond(w, http.StatusOK, station)
}

// GetObservationsHandler handles observation table requests.
func (s *BasinServer) GetObservationsHandler(w http.ResponseWriter, r *http.Request) {
	req, err := validateObservationsParams(r.URL.Query())
	if err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	observations, err := s.service.GetObservations(r.Context(), req)
	if err != nil {
		logger.Error(fmt.Errorf("failed to get observations: %v", err))
		respondErr(w, statusFromError(err), err)
		return
	}

	respond(w, http.StatusOK, observations)
}

// GetForecastsHandler handles forecast table requests.
func (s *BasinServer) GetForecastsHandler(w http.ResponseWriter, r *http.Request) {
	triplet := r.URL.Query().Get("stationTriplet")
	if triplet == "" {
		err := errors.New("stationTriplet parameter not provided in query")
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	forecasts, err := s.service.GetForecasts(r.Context(), &model.ForecastsRequest{StationTriplet: triplet})
	if err != nil {
		logger.Error(fmt.Errorf("failed to get forecasts: %v", err))
		respondErr(w, statusFromError(err), err)
		return
	}

	respond(w, http.StatusOK, forecasts)
}

func validateStationsParams(params url.Values) *model.StationsRequest {
	req := &model.StationsRequest{
		HUC: params.Get("huc"),
	}

	if networks := params.Get("networks"); networks != "" {
		req.Networks = strings.Split(networks, ",")
	}
	if params.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	return req
}

func validateNearestParams(params url.Values) (*model.NearestRequest, error) {
	latStr := params.Get("lat")
	if latStr == "" {
		return nil, errors.New("lat parameter not provided in query")
	}

	lonStr := params.Get("lon")
	if lonStr == "" {
		return nil, errors.New("lon parameter not provided in query")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("lat parameter is not a number: %w", err)
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("lon parameter is not a number: %w", err)
	}

	return &model.NearestRequest{Latitude: lat, Longitude: lon}, nil
}

func validateObservationsParams(params url.Values) (*model.ObservationsRequest, error) {
	triplet := params.Get("stationTriplet")
	if triplet == "" {
		return nil, errors.New("stationTriplet parameter not provided in query")
	}

	element := params.Get("element")
	if element == "" {
		return nil, errors.New("element parameter not provided in query")
	}

	req := &model.ObservationsRequest{
		StationTriplet: triplet,
		ElementCode:    element,
		Duration:       params.Get("duration"),
	}

	if beginStr := params.Get("beginDate"); beginStr != "" {
		begin, err := time.Parse(dateLayout, beginStr)
		if err != nil {
			return nil, fmt.Errorf("beginDate parameter is not an ISO date: %w", err)
		}
		req.BeginDate = begin
	}

	if endStr := params.Get("endDate"); endStr != "" {
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return nil, fmt.Errorf("endDate parameter is not an ISO date: %w", err)
		}
		req.EndDate = end
	}

	return req, nil
}

// statusFromError maps the error taxonomy onto HTTP statuses: caller
// mistakes are 400s, upstream failures are 502s.
func statusFromError(err error) int {
	var userErr *awdb.UserInputError
	if errors.As(err, &userErr) {
		return http.StatusBadRequest
	}

	if errors.Is(err, service.ErrNoStations) {
		return http.StatusNotFound
	}

	var netErr *awdb.NetworkError
	var formatErr *awdb.DataFormatError
	if errors.As(err, &netErr) || errors.As(err, &formatErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
