package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/uhppoted/uhppoted-app-sheets-votes/types"
)

// Export fetches a worksheet through the public Google Sheets CSV export endpoint,
// i.e. <base>/d/<spreadsheet>/export?format=csv&gid=<gid>.
type Export struct {
	base   string
	client *http.Client
}

func NewExport(base string, client *http.Client) *Export {
	if client == nil {
		client = http.DefaultClient
	}

	return &Export{
		base:   strings.TrimSuffix(base, "/"),
		client: client,
	}
}

func (e *Export) Export(ctx context.Context, spreadsheet, gid string) (string, error) {
	uri := fmt.Sprintf("%v/d/%v/export?format=csv&gid=%v", e.base, url.PathEscape(spreadsheet), url.QueryEscape(gid))

	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", failed(err)
	}

	response, err := e.client.Do(rq)
	if err != nil {
		return "", failed(err)
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", failed(fmt.Errorf("%v", response.Status))
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", failed(err)
	}

	return string(body), nil
}

func failed(err error) error {
	return types.AcquisitionError{
		Message: "Failed to fetch CSV data",
		Err:     err,
	}
}
