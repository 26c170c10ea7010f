package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/api"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/awdb"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/logger"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/service"
)

// https://gist.github.com/beautah/6fd355f70460a361dc3ad51da49df74c
const defaultBasinGeoJSONURL = "https://gist.githubusercontent.com/beautah/6fd355f70460a361dc3ad51da49df74c/raw/dd75d0ca57c8c1a8208f4cff3a19f50134e1afb2/roaring_fork_huc8.geojson"

var (
	networks  string
	hucFilter string
	basinName string
	geoJSON   string
	lat, lon  float64
	zoom      int
	radiusKm  float64
)

func main() {
	flag.StringVar(&networks, "networks", "SNTL,USGS,BOR", "comma separated network codes to query")
	flag.StringVar(&hucFilter, "huc", "14010004", "HUC prefix the stations must belong to")
	flag.StringVar(&basinName, "basin", "Roaring Fork", "basin name, also used to narrow forecast points")
	flag.StringVar(&geoJSON, "geojson", defaultBasinGeoJSONURL, "url of the basin boundary GeoJSON, empty to disable")
	flag.Float64Var(&lat, "lat", 39.23, "map center latitude")
	flag.Float64Var(&lon, "lon", -106.90, "map center longitude")
	flag.IntVar(&zoom, "zoom", 10, "map zoom level")
	flag.Float64Var(&radiusKm, "radius", 0, "keep only stations within this distance of the center, in km; 0 disables")
	flag.Parse()

	client := awdb.NewClient(os.Getenv("AWDB_BASE_URL"))

	// One reference-data round trip up front proves the endpoint is
	// reachable before the server starts taking requests.
	ref, err := client.GetReferenceData(context.Background())
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to reach AWDB: %v", err))
	}
	logger.Info(fmt.Sprintf("AWDB reports %d elements across %d networks", len(ref.Elements), len(ref.Networks)))

	svc := service.New(client, service.Config{
		Networks:        strings.Split(networks, ","),
		HUCFilter:       hucFilter,
		CenterLatitude:  lat,
		CenterLongitude: lon,
		Zoom:            zoom,
		RadiusKm:        radiusKm,
		BasinName:       basinName,
		BasinGeoJSONURL: geoJSON,
	})

	if err := api.RunAPI(svc); err != nil {
		logger.Fatal(fmt.Errorf("failed to run basin demo api: %v", err))
	}
}
