package timezone

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // zone data for LoadLocation on hosts without zoneinfo

	"github.com/ringsaturn/tzf"
)

// Fallback is used when no zone can be determined for a coordinate
const Fallback = "GMT"

// Service provides timezone lookup functionality
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
}

// service implements timezone lookup using tzf
type service struct {
	finder tzf.F
	mu     sync.RWMutex
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService creates or returns the singleton timezone service.
// tzf loads its polygon data into memory, so the finder is built once per process.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns the IANA timezone name for the given coordinates,
// e.g. "Atlantic/Reykjavik" or "Asia/Tokyo".
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := s.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}

	return name, nil
}

// Resolve returns the zone name and location for the coordinates, falling
// back to GMT when the lookup fails or the zone is unknown to the runtime.
func Resolve(svc Service, latitude, longitude float64) (string, *time.Location) {
	if svc != nil {
		if name, err := svc.GetTimezone(latitude, longitude); err == nil {
			if loc, err := time.LoadLocation(name); err == nil {
				return name, loc
			}
		}
	}

	loc, err := time.LoadLocation(Fallback)
	if err != nil {
		return Fallback, time.UTC
	}
	return Fallback, loc
}
