package httpd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uhppoted/uhppoted-app-sheets-votes/config"
	"github.com/uhppoted/uhppoted-app-sheets-votes/vote"
)

type counter struct {
	cells  map[string]string
	reads  int
	writes int
}

func (c *counter) Read(ctx context.Context, spreadsheet, cell string) (string, error) {
	c.reads++

	return c.cells[cell], nil
}

func (c *counter) Write(ctx context.Context, spreadsheet, cell, value string) error {
	c.writes++
	c.cells[cell] = value

	return nil
}

type voteResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	NewCount *int   `json:"newCount"`
	Error    string `json:"error"`
}

func post(t *testing.T, s *Server, method, body string) (*httptest.ResponseRecorder, voteResponse) {
	t.Helper()

	rq := httptest.NewRequest(method, "/api/vote", strings.NewReader(body))
	rq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, rq)

	var reply voteResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply), "invalid JSON response: %s", w.Body.String())
	}

	return w, reply
}

func newVoteServer(c *counter, target config.Target) *Server {
	return NewServer(config.Google{}, nil, vote.NewUpdater(c, target))
}

var target = config.Target{
	SheetID:    "sheet",
	Sheet:      "Sheet1",
	Column:     "C",
	Credential: true,
}

func TestVote(t *testing.T) {
	c := counter{cells: map[string]string{"Sheet1!C5": "7"}}
	s := newVoteServer(&c, target)

	w, reply := post(t, s, http.MethodPost, `{"questionId":"Q3","rowIndex":3}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, reply.Success)
	require.NotNil(t, reply.NewCount)
	assert.Equal(t, 8, *reply.NewCount)
	assert.Equal(t, "8", c.cells["Sheet1!C5"])
}

func TestVoteTwice(t *testing.T) {
	c := counter{cells: map[string]string{}}
	s := newVoteServer(&c, target)

	for _, expected := range []int{1, 2} {
		w, reply := post(t, s, http.MethodPost, `{"questionId":"Q0","rowIndex":0}`)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, reply.NewCount)
		assert.Equal(t, expected, *reply.NewCount)
	}

	assert.Equal(t, "2", c.cells["Sheet1!C2"])
}

func TestVoteWithoutCredential(t *testing.T) {
	c := counter{cells: map[string]string{}}
	s := newVoteServer(&c, config.Target{SheetID: "sheet", Sheet: "Sheet1", Column: "C"})

	w, reply := post(t, s, http.MethodPost, `{"questionId":"Q0","rowIndex":0}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reply.Success)
	assert.Nil(t, reply.NewCount)
	assert.Equal(t, "Vote recorded locally only", reply.Message)
	assert.Contains(t, w.Body.String(), `"newCount":null`)
	assert.Zero(t, c.reads)
	assert.Zero(t, c.writes)
}

func TestVoteValidation(t *testing.T) {
	tests := []struct {
		body     string
		status   int
		expected string
	}{
		{`{"rowIndex":1}`, http.StatusBadRequest, "Missing questionId or rowIndex"},
		{`{"questionId":"Q1"}`, http.StatusBadRequest, "Missing questionId or rowIndex"},
		{`{"questionId":"","rowIndex":1}`, http.StatusBadRequest, "Invalid question ID"},
		{`{"questionId":"unknown_7","rowIndex":7}`, http.StatusBadRequest, "Invalid question ID"},
		{`{"questionId":"Q1","rowIndex":-1}`, http.StatusBadRequest, "Invalid row index"},
		{`{"questionId":null,"rowIndex":0}`, http.StatusBadRequest, "Invalid question ID"},
		{`{"questionId":"Q1","rowIndex":9223372036854775807}`, http.StatusBadRequest, "Invalid row index"},
		{`{"questionId":"Q1","rowIndex":"one"}`, http.StatusBadRequest, "Invalid request body"},
		{`not JSON`, http.StatusBadRequest, "Invalid request body"},
	}

	for _, test := range tests {
		c := counter{cells: map[string]string{}}
		s := newVoteServer(&c, target)

		w, reply := post(t, s, http.MethodPost, test.body)

		assert.Equal(t, test.status, w.Code, test.body)
		assert.Equal(t, test.expected, reply.Error, test.body)
		assert.Zero(t, c.writes, test.body)
	}
}

func TestVoteWithoutConfiguration(t *testing.T) {
	s := newVoteServer(&counter{cells: map[string]string{}}, config.Target{Sheet: "Sheet1", Column: "C", Credential: true})

	w, reply := post(t, s, http.MethodPost, `{"questionId":"Q1","rowIndex":0}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Missing configuration", reply.Error)
}

func TestVoteMethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w, reply := post(t, newVoteServer(&counter{}, target), method, `{"questionId":"Q1","rowIndex":0}`)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Equal(t, "Method not allowed", reply.Error, method)
	}
}

func TestVotePreflight(t *testing.T) {
	c := counter{cells: map[string]string{}}
	w, _ := post(t, newVoteServer(&c, target), http.MethodOptions, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Zero(t, c.reads)
}
