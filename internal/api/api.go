package api

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/logger"
	"github.com/nrcs-nwcc/iow-awdb-rest-api-demo/internal/transport/rest/handler"
)

// RunAPI runs the basin demo API.
func RunAPI(service handler.BasinService) error {
	server := handler.NewBasinServer(service)

	r := mux.NewRouter()

	r.HandleFunc("/", server.BasinMapHandler).Methods("GET")
	r.HandleFunc("/api/v1/stations", server.GetStationsHandler).Methods("GET")
	r.HandleFunc("/api/v1/stations/nearest", server.NearestStationHandler).Methods("GET")
	r.HandleFunc("/api/v1/observations", server.GetObservationsHandler).Methods("GET")
	r.HandleFunc("/api/v1/forecasts", server.GetForecastsHandler).Methods("GET")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		logger.Info(fmt.Sprintf("Defaulting to port %s", port))
	}

	logger.Info(fmt.Sprintf("Starting basin demo api at port %s", port))

	options := setupCorsOptions()
	return http.ListenAndServe(":"+port, handlers.CORS(options...)(r))
}
