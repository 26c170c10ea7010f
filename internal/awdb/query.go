package awdb

import (
	"net/url"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// PeriodRef values accepted by the data endpoint.
const (
	PeriodRefStart = "START"
	PeriodRefEnd   = "END"
)

// StationsQuery selects stations from the stations endpoint.
type StationsQuery struct {
	Triplets []StationTriplet
	// Networks expands to one *:*:NETWORK wildcard triplet per code.
	Networks []string
	Elements []string
	// Durations filters the returned station elements, e.g. DAILY, MONTHLY.
	Durations []string
	// IncludeInactive asks for inactive stations too; the API defaults to
	// active ones only.
	IncludeInactive             bool
	ReturnStationElements       bool
	ReturnForecastPointMetadata bool
	ReturnReservoirMetadata     bool
}

// Validate checks the query for caller mistakes.
func (q StationsQuery) Validate() error {
	if len(q.Triplets) == 0 && len(q.Networks) == 0 {
		return &UserInputError{Param: "stationTriplets", Reason: "at least one triplet or network is required"}
	}

	for _, n := range q.Networks {
		if n == "" {
			return &UserInputError{Param: "networks", Reason: "network code must not be empty"}
		}
	}

	return nil
}

// Values encodes the query as AWDB request parameters.
func (q StationsQuery) Values() url.Values {
	triplets := make([]StationTriplet, 0, len(q.Triplets)+len(q.Networks))
	triplets = append(triplets, q.Triplets...)
	for _, n := range q.Networks {
		triplets = append(triplets, NetworkWildcard(n))
	}

	params := url.Values{}
	params.Set("stationTriplets", joinTriplets(triplets))

	if len(q.Elements) > 0 {
		params.Set("elements", strings.Join(q.Elements, ","))
	}
	if len(q.Durations) > 0 {
		params.Set("durations", strings.Join(q.Durations, ","))
	}
	if q.IncludeInactive {
		params.Set("activeOnly", "false")
	}
	if q.ReturnStationElements {
		params.Set("returnStationElements", "true")
	}
	if q.ReturnForecastPointMetadata {
		params.Set("returnForecastPointMetadata", "true")
	}
	if q.ReturnReservoirMetadata {
		params.Set("returnReservoirMetadata", "true")
	}

	return params
}

// DataQuery selects element time series from the data endpoint.
type DataQuery struct {
	Triplets  []StationTriplet
	Elements  []string
	Duration  string
	BeginDate time.Time
	EndDate   time.Time
	PeriodRef string
}

// Validate checks the query for caller mistakes.
func (q DataQuery) Validate() error {
	if len(q.Triplets) == 0 {
		return &UserInputError{Param: "stationTriplets", Reason: "at least one triplet is required"}
	}
	if len(q.Elements) == 0 {
		return &UserInputError{Param: "elements", Reason: "at least one element code is required"}
	}
	if q.Duration == "" {
		return &UserInputError{Param: "duration", Reason: "duration is required, e.g. DAILY or MONTHLY"}
	}
	if q.BeginDate.IsZero() || q.EndDate.IsZero() {
		return &UserInputError{Param: "beginDate", Reason: "both beginDate and endDate are required"}
	}
	if q.EndDate.Before(q.BeginDate) {
		return &UserInputError{Param: "endDate", Reason: "endDate must not precede beginDate"}
	}

	return nil
}

// Values encodes the query as AWDB request parameters.
func (q DataQuery) Values() url.Values {
	params := url.Values{}
	params.Set("stationTriplets", joinTriplets(q.Triplets))
	params.Set("elements", strings.Join(q.Elements, ","))
	params.Set("duration", q.Duration)
	params.Set("beginDate", q.BeginDate.Format(dateLayout))
	params.Set("endDate", q.EndDate.Format(dateLayout))

	if q.PeriodRef != "" {
		params.Set("periodRef", q.PeriodRef)
	}

	return params
}

// ForecastsQuery selects forecast publications from the forecasts endpoint.
type ForecastsQuery struct {
	Triplets             []StationTriplet
	ElementCodes         []string
	BeginPublicationDate time.Time
	EndPublicationDate   time.Time
}

// Validate checks the query for caller mistakes.
func (q ForecastsQuery) Validate() error {
	if len(q.Triplets) == 0 {
		return &UserInputError{Param: "stationTriplets", Reason: "at least one triplet is required"}
	}
	if len(q.ElementCodes) == 0 {
		return &UserInputError{Param: "elementCodes", Reason: "at least one element code is required"}
	}
	if q.BeginPublicationDate.IsZero() || q.EndPublicationDate.IsZero() {
		return &UserInputError{Param: "beginPublicationDate", Reason: "both publication date bounds are required"}
	}
	if q.EndPublicationDate.Before(q.BeginPublicationDate) {
		return &UserInputError{Param: "endPublicationDate", Reason: "endPublicationDate must not precede beginPublicationDate"}
	}

	return nil
}

// Values encodes the query as AWDB request parameters.
func (q ForecastsQuery) Values() url.Values {
	params := url.Values{}
	params.Set("stationTriplets", joinTriplets(q.Triplets))
	params.Set("elementCodes", strings.Join(q.ElementCodes, ","))
	params.Set("beginPublicationDate", q.BeginPublicationDate.Format(dateLayout))
	params.Set("endPublicationDate", q.EndPublicationDate.Format(dateLayout))

	return params
}
