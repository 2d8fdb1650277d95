package receipt

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// processingFailure writes the single failure shape every pipeline error
// collapses to: HTTP 500 with the underlying message as the detail text
func processingFailure(w http.ResponseWriter, err error) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{
		"detail": err.Error(),
	})
}

// handleProcessReceipt accepts a base64-encoded receipt image, runs it
// through the processing pipeline and returns the extracted fields
func (s *Server) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageBase64 string `json:"image_base64"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Error decoding request body", "error", err)
		processingFailure(w, err)
		return
	}

	result, err := s.service.ProcessReceipt(r.Context(), req.ImageBase64)
	if err != nil {
		slog.Error("Error processing receipt", "error", err)
		processingFailure(w, err)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
