package awdb

import (
	"fmt"
	"strings"
)

// Wildcard matches any value in a triplet part.
const Wildcard = "*"

// StationTriplet is the station:state:network identifier scheme used by AWDB
// to address a single monitoring station, e.g. "09085000:CO:USGS".
type StationTriplet struct {
	StationID   string
	StateCode   string
	NetworkCode string
}

// ParseStationTriplet parses a triplet string into its three parts.
func ParseStationTriplet(s string) (StationTriplet, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return StationTriplet{}, &UserInputError{
			Param:  "stationTriplet",
			Reason: fmt.Sprintf("%q must have the form station:state:network", s),
		}
	}

	for _, p := range parts {
		if p == "" {
			return StationTriplet{}, &UserInputError{
				Param:  "stationTriplet",
				Reason: fmt.Sprintf("%q has an empty part, use %q to match any value", s, Wildcard),
			}
		}
	}

	return StationTriplet{
		StationID:   parts[0],
		StateCode:   parts[1],
		NetworkCode: parts[2],
	}, nil
}

// NetworkWildcard returns a triplet matching every station of a network.
func NetworkWildcard(network string) StationTriplet {
	return StationTriplet{StationID: Wildcard, StateCode: Wildcard, NetworkCode: network}
}

func (t StationTriplet) String() string {
	return fmt.Sprintf("%s:%s:%s", t.StationID, t.StateCode, t.NetworkCode)
}

// IsWildcard reports whether any part of the triplet is a wildcard.
func (t StationTriplet) IsWildcard() bool {
	return t.StationID == Wildcard || t.StateCode == Wildcard || t.NetworkCode == Wildcard
}

func joinTriplets(triplets []StationTriplet) string {
	strs := make([]string, 0, len(triplets))
	for _, t := range triplets {
		strs = append(strs, t.String())
	}

	return strings.Join(strs, ",")
}
