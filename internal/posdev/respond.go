package posdev

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeData(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(envelope{Status: "success", Data: data}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeList(w http.ResponseWriter, items any, total int) {
	writeData(w, http.StatusOK, map[string]any{
		"data":  items,
		"total": total,
	})
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(envelope{Status: "error", Message: message}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
