package httpd

import (
	"net/http"

	"github.com/uhppoted/uhppoted-app-sheets-votes/config"
	"github.com/uhppoted/uhppoted-app-sheets-votes/records"
)

type queryResponse struct {
	Data          []records.Record `json:"data"`
	Total         int              `json:"total"`
	TotalOriginal int              `json:"totalOriginal"`
	Method        string           `json:"method"`
}

type noDataResponse struct {
	Data    []records.Record `json:"data"`
	Message string           `json:"message"`
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	q := config.Resolve(s.google, config.ParamsFromQuery(r.URL.Query()))

	result, err := s.source.Query(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	if result.NoData {
		writeJSON(w, http.StatusOK, noDataResponse{
			Data:    []records.Record{},
			Message: "No data found",
		})
		return
	}

	filtered := records.Filter(result.Records)

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	writeJSON(w, http.StatusOK, queryResponse{
		Data:          filtered,
		Total:         len(filtered),
		TotalOriginal: len(result.Records),
		Method:        string(result.Method),
	})
}
