package api

import (
	"os"

	"github.com/gorilla/handlers"
)

func setupCorsOptions() []handlers.CORSOption {
	origin := os.Getenv("ORIGIN")
	if origin == "" {
		origin = "*"
	}

	methods := handlers.AllowedMethods([]string{"GET", "OPTIONS"})
	origins := handlers.AllowedOrigins([]string{origin})
	headers := handlers.AllowedHeaders([]string{"Content-Type"})

	return []handlers.CORSOption{methods, origins, headers}
}
