package offer

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gigscout/gigscout/internal/geo"
	"github.com/gigscout/gigscout/internal/recognition"
)

// IDGenerator generates unique IDs for offers
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates IDs using UnixNano timestamp
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles offer operations
type Service struct {
	db          DB
	recognizer  recognition.Recognizer
	storage     Storage
	geocoder    geo.Geocoder
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, recognizer recognition.Recognizer, storage Storage, geocoder geo.Geocoder) *Service {
	return &Service{
		db:          db,
		recognizer:  recognizer,
		storage:     storage,
		geocoder:    geocoder,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, recognizer recognition.Recognizer, storage Storage, geocoder geo.Geocoder, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		recognizer:  recognizer,
		storage:     storage,
		geocoder:    geocoder,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// sanitizeFilename tames the names phone share sheets produce (for example
// "Screenshot 2026-08-01 at 12.00.00 PM.png"): special characters go, runs of
// whitespace collapse, and the base is capped at 50 chars.
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	// Some screenshots sanitize down to nothing
	if base == "" {
		base = "screenshot"
	}

	return base + ext
}

// ProcessOffer stores an offer screenshot, extracts the pay, distance and
// pickup label from it, estimates the driver's detour to the pickup when the
// driver's position is known, and evaluates profitability. Extraction never
// fails the upload; missing fields stay absent for the driver to fill in.
func (s *Service) ProcessOffer(filename string, data []byte, contentType string, origin *geo.Coordinate) (*Offer, error) {
	// Generate unique ID
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	// Sanitize filename to clean up phone-generated long filenames
	cleanFilename := sanitizeFilename(filename)

	// Save screenshot to storage
	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, cleanFilename), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	// Parse the screenshot; degrades to absent fields on any failure
	parsed := Parse(s.recognizer, data, contentType)

	offer := &Offer{
		ID:          id,
		PayUSD:      parsed.PayUSD,
		GigMiles:    parsed.GigMiles,
		PickupQuery: parsed.PickupQuery,
		ExtraMiles:  s.extraMilesToPickup(parsed.PickupQuery, origin),
		RawText:     parsed.RawText,
		Filename:    savedPath,
		ContentType: contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.evaluate(offer); err != nil {
		s.storage.Delete(savedPath)
		return nil, err
	}

	// Save to database
	if err := s.db.SaveOffer(offer); err != nil {
		// Clean up file if database save fails
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("saving offer to database: %w", err)
	}

	return offer, nil
}

// extraMilesToPickup geocodes the pickup label and measures the driver's
// detour. Geocoding failure is never fatal; it only leaves the field absent.
func (s *Service) extraMilesToPickup(pickup string, origin *geo.Coordinate) *float64 {
	if pickup == "" || origin == nil {
		return nil
	}

	coord, found, err := s.geocoder.Resolve(pickup)
	if err != nil {
		slog.Warn("Geocoding failed", "pickup", pickup, "error", err)
		return nil
	}
	if !found {
		return nil
	}

	miles := geo.DistanceMiles(*origin, coord)
	return &miles
}

// evaluate recomputes the offer's profitability against the stored vehicle
// profile. Without a pay figure there is nothing to evaluate and the
// computation stays absent.
func (s *Service) evaluate(offer *Offer) error {
	if offer.PayUSD == nil {
		offer.Computation = nil
		return nil
	}

	vehicle, err := s.db.GetVehicle()
	if err != nil {
		return fmt.Errorf("loading vehicle profile: %w", err)
	}

	var gigMiles, extraMiles float64
	if offer.GigMiles != nil {
		gigMiles = *offer.GigMiles
	}
	if offer.ExtraMiles != nil {
		extraMiles = *offer.ExtraMiles
	}

	computation := Evaluate(*offer.PayUSD, gigMiles, extraMiles, vehicle.MPG, vehicle.GasPriceUSD)
	offer.Computation = &computation
	return nil
}

// OfferUpdate carries driver corrections to the extracted fields. Nil fields
// are left unchanged.
type OfferUpdate struct {
	PayUSD      *float64 `json:"pay_usd,omitempty"`
	GigMiles    *float64 `json:"gig_miles,omitempty"`
	ExtraMiles  *float64 `json:"extra_miles,omitempty"`
	PickupQuery *string  `json:"pickup_query,omitempty"`
}

// UpdateOffer applies driver corrections and re-evaluates the offer
func (s *Service) UpdateOffer(id string, update OfferUpdate) (*Offer, error) {
	offer, err := s.db.GetOffer(id)
	if err != nil {
		return nil, fmt.Errorf("getting offer: %w", err)
	}

	if update.PayUSD != nil {
		offer.PayUSD = update.PayUSD
	}
	if update.GigMiles != nil {
		offer.GigMiles = update.GigMiles
	}
	if update.ExtraMiles != nil {
		offer.ExtraMiles = update.ExtraMiles
	}
	if update.PickupQuery != nil {
		offer.PickupQuery = *update.PickupQuery
	}
	offer.UpdatedAt = s.timeSource.Now()

	if err := s.evaluate(offer); err != nil {
		return nil, err
	}

	if err := s.db.SaveOffer(offer); err != nil {
		return nil, fmt.Errorf("saving offer to database: %w", err)
	}
	return offer, nil
}

// GetOffer retrieves an offer by ID
func (s *Service) GetOffer(id string) (*Offer, error) {
	offer, err := s.db.GetOffer(id)
	if err != nil {
		return nil, fmt.Errorf("getting offer: %w", err)
	}
	return offer, nil
}

// ListOffers returns all offers
func (s *Service) ListOffers() ([]*Offer, error) {
	offers, err := s.db.ListOffers()
	if err != nil {
		return nil, fmt.Errorf("listing offers: %w", err)
	}
	return offers, nil
}

// DeleteOffer removes an offer and its screenshot
func (s *Service) DeleteOffer(id string) error {
	offer, err := s.db.GetOffer(id)
	if err != nil {
		return fmt.Errorf("getting offer for deletion: %w", err)
	}

	// Delete file
	if err := s.storage.Delete(offer.Filename); err != nil {
		// Log error but continue with database deletion
		slog.Warn("Failed to delete file", "filename", offer.Filename, "error", err)
	}

	// Delete from database
	if err := s.db.DeleteOffer(id); err != nil {
		return fmt.Errorf("deleting offer from database: %w", err)
	}
	return nil
}

// GetOfferFile retrieves the screenshot data for an offer
func (s *Service) GetOfferFile(id string) ([]byte, string, error) {
	offer, err := s.db.GetOffer(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting offer: %w", err)
	}

	data, err := s.storage.Get(offer.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting offer file: %w", err)
	}

	return data, offer.ContentType, nil
}

// Vehicle returns the stored vehicle profile
func (s *Service) Vehicle() (Vehicle, error) {
	return s.db.GetVehicle()
}

// SetVehicle normalizes and persists the vehicle profile
func (s *Service) SetVehicle(vehicle Vehicle) (Vehicle, error) {
	normalized := vehicle.Normalized()
	if err := s.db.SaveVehicle(normalized); err != nil {
		return Vehicle{}, fmt.Errorf("saving vehicle profile: %w", err)
	}
	return normalized, nil
}

// EvaluateAgainstVehicle computes profitability for explicit figures using
// the stored vehicle profile, without touching any offer.
func (s *Service) EvaluateAgainstVehicle(pay, gigMiles, extraMiles float64) (Computation, error) {
	vehicle, err := s.db.GetVehicle()
	if err != nil {
		return Computation{}, fmt.Errorf("loading vehicle profile: %w", err)
	}
	return Evaluate(pay, gigMiles, extraMiles, vehicle.MPG, vehicle.GasPriceUSD), nil
}
