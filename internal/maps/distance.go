// Package maps wraps the Google Maps client used to resolve trip distances.
package maps

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/umahmood/haversine"
	"googlemaps.github.io/maps"

	"pinkauto/internal/types"
)

// roadWindingFactor scales the great-circle distance into a road-distance
// estimate when the Distance Matrix API is unavailable.
const roadWindingFactor = 1.3

// DistanceService resolves driving distances between coordinates.
type DistanceService struct {
	client *maps.Client
	log    *logrus.Entry
}

// NewDistanceService creates a DistanceService with the given API key.
func NewDistanceService(apiKey string, log *logrus.Logger) (*DistanceService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &DistanceService{client: client, log: log.WithField("component", "maps")}, nil
}

// RoadDistanceKm returns the driving distance in kilometres from origin to
// destination. When the API fails or finds no route it falls back to a
// haversine estimate scaled by a road-winding factor, so a quote is always
// available while the mapping provider is down.
func (s *DistanceService) RoadDistanceKm(ctx context.Context, origin, dest types.Point) (float64, error) {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{latLng(origin)},
		Destinations: []string{latLng(dest)},
		Mode:         maps.TravelModeDriving,
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		s.log.WithError(err).Warn("distance matrix failed, using haversine estimate")
		return s.estimateKm(origin, dest), nil
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("distance matrix: empty response")
	}
	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		s.log.WithField("status", el.Status).Warn("no route found, using haversine estimate")
		return s.estimateKm(origin, dest), nil
	}
	return float64(el.Distance.Meters) / 1000.0, nil
}

func (s *DistanceService) estimateKm(origin, dest types.Point) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: origin.Lat, Lon: origin.Lng},
		haversine.Coord{Lat: dest.Lat, Lon: dest.Lng},
	)
	return km * roadWindingFactor
}

func latLng(p types.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
