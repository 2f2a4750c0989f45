package server

import (
	"encoding/json"
	"net/http"
)

// Error reason codes. Error bodies are always {"error": code}.
const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeEmptyBody          = "empty_body"
	codeInvalidBody        = "invalid_body"
	codeNotInBattlegrounds = "not_in_battlegrounds"
	codeSimulationFailed   = "simulation_failed"
	codeServerError        = "server_error"
	codeNotFound           = "not_found"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRawJSON(w http.ResponseWriter, code int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, code int, reason string) {
	writeJSON(w, code, map[string]string{"error": reason})
}
