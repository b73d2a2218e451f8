package handler

import "net/http"

// VersionResponse reports build identity for deploy verification
type VersionResponse struct {
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// HandleVersion returns the running build's identity
func HandleVersion(service, version, environment string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionResponse{
			Service:     service,
			Version:     version,
			Environment: environment,
		})
	}
}
