// Package geolocation models the browser's position capability as seen by
// the server: the page script asks the browser for a position and reports
// the outcome, and a Locator resolves that report exactly once.
package geolocation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"vedur/internal/locations"
	"vedur/internal/types"
)

// ErrUnsupported is returned when the browser has no geolocation capability.
// Its text is shown to the user as is.
var ErrUnsupported = errors.New("Geolocation is not supported by your browser.")

// Position error codes as reported by the browser
const (
	PermissionDenied    = 1
	PositionUnavailable = 2
	Timeout             = 3
)

// PositionError describes why the browser could not provide a position
type PositionError struct {
	Code    int
	Message string
}

func (e *PositionError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = describeCode(e.Code)
	}
	return "Villa við að fá staðsetningu: " + msg
}

func describeCode(code int) string {
	switch code {
	case PermissionDenied:
		return "permission denied"
	case PositionUnavailable:
		return "position unavailable"
	case Timeout:
		return "timeout expired"
	default:
		return fmt.Sprintf("unknown error (code %d)", code)
	}
}

// Locator provides the last known position of the user
type Locator interface {
	// Supported reports whether a position can be requested at all
	Supported() bool
	// CurrentPosition resolves the position once, with either coordinates or an error
	CurrentPosition(ctx context.Context) (types.Coords, error)
}

// Report is the outcome of a browser position request
type Report struct {
	Unsupported bool
	Coords      *types.Coords
	Err         *PositionError
}

func (r Report) Supported() bool {
	return !r.Unsupported
}

func (r Report) CurrentPosition(ctx context.Context) (types.Coords, error) {
	if err := ctx.Err(); err != nil {
		return types.Coords{}, err
	}
	switch {
	case r.Unsupported:
		return types.Coords{}, ErrUnsupported
	case r.Err != nil:
		return types.Coords{}, r.Err
	case r.Coords == nil:
		return types.Coords{}, &PositionError{Code: PositionUnavailable}
	}
	return *r.Coords, nil
}

// ParseReport reads a position report from query values:
//
//	latitude=..&longitude=..   a position
//	code=N&message=..          a position error
//	unsupported=1              no capability
//
// A request carrying none of these is treated as coming from a browser
// without the capability (for example with scripting disabled).
func ParseReport(values url.Values) (Report, error) {
	if isTrue(values.Get("unsupported")) {
		return Report{Unsupported: true}, nil
	}

	if code := values.Get("code"); code != "" {
		n, err := strconv.Atoi(code)
		if err != nil {
			return Report{}, fmt.Errorf("invalid position error code %q: %w", code, err)
		}
		return Report{Err: &PositionError{Code: n, Message: strings.TrimSpace(values.Get("message"))}}, nil
	}

	latStr, lonStr := values.Get("latitude"), values.Get("longitude")
	if latStr == "" && lonStr == "" {
		return Report{Unsupported: true}, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return Report{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return Report{}, fmt.Errorf("invalid longitude: %w", err)
	}

	coords := types.NewCoords(lat, lon)
	if err := locations.ValidateCoords(coords); err != nil {
		return Report{}, err
	}
	return Report{Coords: &coords}, nil
}

func isTrue(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
