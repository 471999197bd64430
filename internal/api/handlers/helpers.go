package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"parcel-delivery-sim/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		reqID, _ := r.Context().Value(obs.RequestIDKey).(string)
		log.Printf("req_id=%s op=encode method=%s path=%s err=%v", reqID, r.Method, r.URL.Path, err)
	}
}

// writeError echoes the request ID so a client report can be matched to the log line.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	res := map[string]string{"error": msg}
	if reqID, ok := r.Context().Value(obs.RequestIDKey).(string); ok && reqID != "" {
		res["request_id"] = reqID
	}
	writeJSON(w, r, status, res)
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}
