package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uhppoted/uhppoted-app-sheets-votes/types"
)

func TestExport(t *testing.T) {
	var path, format, gid string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		format = r.URL.Query().Get("format")
		gid = r.URL.Query().Get("gid")

		fmt.Fprint(w, "ID,Name,Good\n1,A,\n2,B,3\n")
	}))

	defer srv.Close()

	e := NewExport(srv.URL+"/", srv.Client())

	text, err := e.Export(context.Background(), "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", "123")
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if path != "/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/export" {
		t.Errorf("Incorrect export path - got:%v", path)
	}

	if format != "csv" || gid != "123" {
		t.Errorf("Incorrect export query - expected format:csv gid:123, got format:%v gid:%v", format, gid)
	}

	if text != "ID,Name,Good\n1,A,\n2,B,3\n" {
		t.Errorf("Incorrect CSV text - got:%q", text)
	}
}

func TestExportWithHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	defer srv.Close()

	_, err := NewExport(srv.URL, srv.Client()).Export(context.Background(), "sheet", "0")

	var aerr types.AcquisitionError
	if !errors.As(err, &aerr) {
		t.Fatalf("Expected AcquisitionError, got %v", err)
	}

	if aerr.Message != "Failed to fetch CSV data" {
		t.Errorf("Incorrect error message - expected:%q, got:%q", "Failed to fetch CSV data", aerr.Message)
	}
}

func TestExportWithConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewExport(url, nil).Export(context.Background(), "sheet", "0")
	if err == nil || err.Error() != "Failed to fetch CSV data" {
		t.Fatalf("Expected 'Failed to fetch CSV data' error, got %v", err)
	}
}
