package gmaps

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
)

// Google Maps Platform product names, used so failure messages tell the
// caller exactly which API to enable or fix.
const (
	ServiceGeocoding      = "Geocoding API"
	ServicePlaces         = "Places API (New)"
	ServiceDistanceMatrix = "Distance Matrix API"
)

// statusFailure maps a non-2xx HTTP status to an actionable message for the
// given service. The upstream error surface is a bare status code; turning
// it into a next step for the caller is the client's main value over a
// plain proxy.
func statusFailure(service string, statusCode int) string {
	switch statusCode {
	case http.StatusForbidden:
		return fmt.Sprintf("access denied (HTTP 403): the %s is not enabled for this key or the key is restricted. Enable the %s in the Google Cloud console and retry", service, service)
	case http.StatusTooManyRequests:
		return fmt.Sprintf("rate limited (HTTP 429): the %s quota was exceeded. Wait a moment and retry", service)
	case http.StatusBadRequest:
		return fmt.Sprintf("malformed request (HTTP 400): the %s rejected the input. Check the input format and retry", service)
	default:
		return fmt.Sprintf("%s error (HTTP %d): retry later or escalate if the error persists", service, statusCode)
	}
}

// transportFailure maps a network-layer error (timeout, refused connection,
// cancelled context) to a failure message. Nothing at this layer is retried;
// the message tells the caller what to do instead.
func transportFailure(service string, err error) string {
	if isTimeout(err) {
		return fmt.Sprintf("request to the %s timed out. Retry, possibly with a smaller input", service)
	}
	return fmt.Sprintf("failed to reach the %s: %v. Check connectivity and retry", service, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// decodeFailure reports a response body the client could not parse.
func decodeFailure(service string, err error) string {
	return fmt.Sprintf("the %s returned an unexpected response body: %v. Retry or escalate if the error persists", service, err)
}
