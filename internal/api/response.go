package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/reflectlab/JournalPipe/internal/models"
)

// fallbackErrorResponse is pre-marshaled at startup so a payload that
// fails to encode can still produce a well-formed error body.
var fallbackErrorResponse []byte

func init() {
	var err error
	fallbackErrorResponse, err = json.Marshal(models.Error("Internal server error"))
	if err != nil {
		panic(fmt.Sprintf("Failed to marshal fallback error response at startup: %v", err))
	}
}

// writeJSONResponse marshals the response before touching the writer,
// so encoding failures can downgrade the status code instead of
// corrupting an already-started body.
func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		slog.Error("Server.writeJSONResponse: failed to marshal JSON response", "error", err)
		jsonData = fallbackErrorResponse
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(jsonData); writeErr != nil {
		slog.Error("Server.writeJSONResponse: failed to write JSON response", "error", writeErr)
	}
}

// writeRejection reports a validation rejection. The request itself
// succeeded, so the status is 200 and the envelope carries the reason
// plus the turn data the client needs to retry.
func writeRejection(w http.ResponseWriter, reason string, result interface{}) {
	writeJSONResponse(w, http.StatusOK, models.Rejected(reason, result))
}
