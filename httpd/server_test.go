package httpd

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uhppoted/uhppoted-app-sheets-votes/config"
	"github.com/uhppoted/uhppoted-app-sheets-votes/source"
)

func TestServe(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(config.Google{SheetID: "abc"}, source.NewSource(&exporter{text: "ID,Name\n1,A\n"}, nil), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- s.Serve(ctx, listener, config.HTTP{MaxConnections: 2, ReadTimeout: time.Second, WriteTimeout: time.Second})
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	response, err := client.Get(fmt.Sprintf("http://%v/api/sheets", listener.Addr()))
	require.NoError(t, err)

	body, err := io.ReadAll(response.Body)
	response.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, string(body), `"method":"csv"`)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)

	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for server shutdown")
	}
}

func TestRunWithInvalidBindAddress(t *testing.T) {
	s := NewServer(config.Google{}, nil, nil)

	err := s.Run(context.Background(), config.HTTP{Bind: "qwerty:uiop"})
	assert.Error(t, err)
}
