package awdb

// Wire types mirroring the AWDB v1 JSON payloads. Field sets are limited to
// what the demo consumes.

// StationMetadata is one entry of a stations endpoint response.
type StationMetadata struct {
	StationTriplet string           `json:"stationTriplet"`
	StationID      string           `json:"stationId"`
	StateCode      string           `json:"stateCode"`
	NetworkCode    string           `json:"networkCode"`
	Name           string           `json:"name"`
	HUC            string           `json:"huc"`
	Elevation      float64          `json:"elevation"`
	Latitude       float64          `json:"latitude"`
	Longitude      float64          `json:"longitude"`
	DataTimeZone   float64          `json:"dataTimeZone"`
	StationElems   []StationElement `json:"stationElements"`
}

// StationElement describes one element available at a station.
type StationElement struct {
	ElementCode      string `json:"elementCode"`
	Ordinal          int    `json:"ordinal"`
	DurationName     string `json:"durationName"`
	DataPrecision    int    `json:"dataPrecision"`
	OriginalUnitCode string `json:"originalUnitCode"`
	StoredUnitCode   string `json:"storedUnitCode"`
	BeginDate        string `json:"beginDate"`
	EndDate          string `json:"endDate"`
}

// StationData is one entry of a data endpoint response: every requested
// element series for a single station.
type StationData struct {
	StationTriplet string        `json:"stationTriplet"`
	Data           []ElementData `json:"data"`
}

// ElementData is a single element time series.
type ElementData struct {
	StationElement StationElement `json:"stationElement"`
	Values         []ElementValue `json:"values"`
}

// ElementValue is a single reading. Daily series carry Date; monthly series
// carry Year and Month. Value is absent when the station reported no data
// for the period.
type ElementValue struct {
	Date  string   `json:"date,omitempty"`
	Year  int      `json:"year,omitempty"`
	Month int      `json:"month,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

// ForecastData is one entry of a forecasts endpoint response: every
// publication for a single forecast point.
type ForecastData struct {
	StationTriplet    string     `json:"stationTriplet"`
	ForecastPointName string     `json:"forecastPointName"`
	Data              []Forecast `json:"data"`
}

// Forecast is a single published forecast: exceedance percentage -> value.
type Forecast struct {
	ElementCode     string             `json:"elementCode"`
	ForecastPeriod  []string           `json:"forecastPeriod"`
	PublicationDate string             `json:"publicationDate"`
	UnitCode        string             `json:"unitCode"`
	ForecastValues  map[string]float64 `json:"forecastValues"`
}

// ReferenceData lists the code tables published by the reference-data
// endpoint.
type ReferenceData struct {
	Elements  []ReferenceElement  `json:"elements"`
	Durations []ReferenceDuration `json:"durations"`
	Networks  []ReferenceNetwork  `json:"networks"`
}

// ReferenceElement describes a measurable quantity code.
type ReferenceElement struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	StoredUnitCode string `json:"storedUnitCode"`
}

// ReferenceDuration describes a reporting period code.
type ReferenceDuration struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ReferenceNetwork describes a station network code.
type ReferenceNetwork struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
