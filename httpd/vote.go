package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/uhppoted/uhppoted-app-sheets-votes/types"
	"github.com/uhppoted/uhppoted-app-sheets-votes/vote"
)

func (s *Server) vote(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusOK)
		return

	case http.MethodPost:

	default:
		writeError(w, types.MethodError{Method: r.Method})
		return
	}

	var rq vote.Request

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
		writeError(w, types.ValidationError{Message: "Invalid request body"})
		return
	}

	result, err := s.voter.Vote(r.Context(), rq)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
