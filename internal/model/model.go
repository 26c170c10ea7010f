// Package model contains the domain records exchanged between the AWDB
// client, the tabular transformer and the REST layer.
package model

import "time"

// Station describes a single monitoring station as reported by AWDB.
// Immutable once fetched.
type Station struct {
	Triplet     string           `json:"stationTriplet"`
	Name        string           `json:"name"`
	NetworkCode string           `json:"networkCode"`
	StateCode   string           `json:"stateCode"`
	HUC         string           `json:"huc,omitempty"`
	Latitude    float64          `json:"latitude"`
	Longitude   float64          `json:"longitude"`
	Elevation   float64          `json:"elevation"`
	Elements    []StationElement `json:"stationElements,omitempty"`
}

// StationElement describes one measured quantity available at a station.
type StationElement struct {
	ElementCode      string `json:"elementCode"`
	DurationName     string `json:"durationName"`
	OriginalUnitCode string `json:"originalUnitCode"`
	BeginDate        string `json:"beginDate,omitempty"`
	EndDate          string `json:"endDate,omitempty"`
}

// Observation is one flattened table row: a single measured value for a
// station element at a point in time. Value is nil when the source reported
// the timestamp without a reading.
type Observation struct {
	StationTriplet string    `json:"stationTriplet"`
	ElementCode    string    `json:"elementCode"`
	Duration       string    `json:"duration"`
	Date           time.Time `json:"date"`
	Value          *float64  `json:"value"`
	Unit           string    `json:"unit"`
}

// ForecastRow is one melted forecast table row: a single exceedance value
// from one forecast publication.
type ForecastRow struct {
	StationTriplet  string    `json:"stationTriplet"`
	PublicationDate time.Time `json:"publicationDate"`
	Exceedance      string    `json:"exceedance"`
	Value           float64   `json:"value"`
	Unit            string    `json:"unit"`
}

// StationsRequest contains station listing request parameters.
type StationsRequest struct {
	Networks        []string `json:"networks"`
	HUC             string   `json:"huc"`
	IncludeInactive bool     `json:"includeInactive"`
}

// NearestRequest contains nearest station request parameters.
type NearestRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ObservationsRequest contains observation table request parameters.
type ObservationsRequest struct {
	StationTriplet string    `json:"stationTriplet"`
	ElementCode    string    `json:"elementCode"`
	Duration       string    `json:"duration"`
	BeginDate      time.Time `json:"beginDate"`
	EndDate        time.Time `json:"endDate"`
}

// ForecastsRequest contains forecast table request parameters.
type ForecastsRequest struct {
	StationTriplet string `json:"stationTriplet"`
}
