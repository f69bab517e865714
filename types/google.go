package types

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// UpstreamMessage returns the error message reported by the Google API for err, or
// fallback if err does not carry one.
func UpstreamMessage(err error, fallback string) string {
	var gerr *googleapi.Error

	if errors.As(err, &gerr) && strings.TrimSpace(gerr.Message) != "" {
		return gerr.Message
	}

	return fallback
}
