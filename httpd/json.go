package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/uhppoted/uhppoted-app-sheets-votes/log"
	"github.com/uhppoted/uhppoted-app-sheets-votes/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("error encoding JSON response (%v)", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := types.StatusCode(err)

	if status >= http.StatusInternalServerError {
		log.Errorf("%v", err)
	} else {
		log.Debugf("%v", err)
	}

	writeJSON(w, status, errorResponse{
		Error: err.Error(),
	})
}
