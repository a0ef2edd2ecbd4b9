package controllers

import "net/http"

// Health reports that the backend is up
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "message": "Backend is running"})
}
