package usecase

import (
	"context"
	"fmt"

	"parkeasy/internal/data/entity"
	"parkeasy/internal/data/repository"
	"parkeasy/internal/dto/response"
	"parkeasy/internal/geo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ZoneService interface {
	// Search lists zones, optionally filtered by a case-insensitive
	// substring of the name and ranked by distance from origin.
	Search(ctx context.Context, query string, origin *geo.Point) ([]response.ZoneResponse, error)

	// Nearby returns the compact zone list for map clients, with distances
	// when an origin is given.
	Nearby(ctx context.Context, origin *geo.Point) ([]response.NearbyZoneResponse, error)

	GetZone(ctx context.Context, zoneID string) (*response.ZoneResponse, error)
}

type zoneService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewZoneService(repo *repository.Repository, log *zap.Logger) ZoneService {
	return &zoneService{
		repo: repo,
		log:  log.With(zap.String("service", "zone")),
	}
}

func (s *zoneService) Search(ctx context.Context, query string, origin *geo.Point) ([]response.ZoneResponse, error) {
	zones, err := s.listZones(ctx, query)
	if err != nil {
		return nil, err
	}

	ranked := geo.Rank(zones, origin)

	results := make([]response.ZoneResponse, len(ranked))
	for i, r := range ranked {
		results[i] = response.ZoneToResponse(r)
	}

	s.log.Info("Zones searched",
		zap.String("query", query),
		zap.Bool("ranked", origin != nil),
		zap.Int("count", len(results)),
	)

	return results, nil
}

func (s *zoneService) Nearby(ctx context.Context, origin *geo.Point) ([]response.NearbyZoneResponse, error) {
	zones, err := s.repo.Zone.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list zones for nearby query", zap.Error(err))
		return nil, fmt.Errorf("list zones: %w", err)
	}

	results := make([]response.NearbyZoneResponse, len(zones))
	for i, zone := range zones {
		var distance *float64
		if origin != nil && zone.HasCoordinates() {
			d := geo.Distance(*origin, geo.Point{Lat: *zone.Lat, Lon: *zone.Lon})
			distance = geo.RankedZone{Zone: zone, Distance: &d}.DisplayDistance()
		}
		results[i] = response.NearbyZoneToResponse(zone, distance)
	}

	return results, nil
}

func (s *zoneService) GetZone(ctx context.Context, zoneID string) (*response.ZoneResponse, error) {
	id, err := uuid.Parse(zoneID)
	if err != nil {
		return nil, fmt.Errorf("invalid zone ID format %s: %w", zoneID, err)
	}

	zone, err := s.repo.Zone.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, fmt.Errorf("zone %s: %w", zoneID, entity.ErrZoneNotFound)
	}

	resp := response.ZoneToResponse(geo.RankedZone{Zone: zone})
	return &resp, nil
}

func (s *zoneService) listZones(ctx context.Context, query string) ([]*entity.Zone, error) {
	if query == "" {
		zones, err := s.repo.Zone.FindAll(ctx)
		if err != nil {
			s.log.Error("Failed to list zones", zap.Error(err))
			return nil, fmt.Errorf("list zones: %w", err)
		}
		return zones, nil
	}

	zones, err := s.repo.Zone.FindByName(ctx, query)
	if err != nil {
		s.log.Error("Failed to search zones", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("search zones %q: %w", query, err)
	}
	return zones, nil
}
