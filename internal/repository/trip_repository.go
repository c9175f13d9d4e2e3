package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"fleet-tracking-service/internal/model"
)

var ErrDataDirNotFound = errors.New("trips data directory not found")

// tripNames maps known batch filenames to display labels. Files outside
// the map fall back to a normalized filename.
var tripNames = map[string]string{
	"trip_1_cross_country.json":      "Cross-Country Long Haul",
	"trip_2_urban_dense.json":        "Urban Dense Delivery",
	"trip_3_mountain_cancelled.json": "Mountain Route Cancelled",
	"trip_4_southern_technical.json": "Southern Technical Issues",
	"trip_5_regional_logistics.json": "Regional Logistics",
}

// TripRepository holds every trip reconstructed from the event batches.
// It is populated once by Load and read-only afterwards, so concurrent
// readers need no locking.
type TripRepository struct {
	trips map[string]*model.Trip
	order []string
	log   zerolog.Logger
}

func NewTripRepository(log zerolog.Logger) *TripRepository {
	return &TripRepository{
		trips: make(map[string]*model.Trip),
		log:   log,
	}
}

// Load reads every *.json batch under dir and builds the trip table.
// A malformed or empty batch is skipped with a warning; a missing
// directory fails the whole load.
func (r *TripRepository) Load(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDataDirNotFound, dir)
		}
		return fmt.Errorf("read trips data directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		trip, err := r.loadBatch(filepath.Join(dir, entry.Name()), entry.Name())
		if err != nil {
			r.log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping trip batch")
			continue
		}
		if trip == nil {
			continue
		}

		if _, exists := r.trips[trip.ID]; !exists {
			r.order = append(r.order, trip.ID)
		}
		r.trips[trip.ID] = trip
	}

	r.log.Info().Int("trips", len(r.trips)).Msg("loaded trip batches")
	return nil
}

func (r *TripRepository) loadBatch(path, filename string) (*model.Trip, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	var events []model.Event
	if err := json.Unmarshal(content, &events); err != nil {
		return nil, fmt.Errorf("parse batch: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	first := events[0]
	last := events[len(events)-1]

	return &model.Trip{
		ID:              first.TripID,
		Name:            tripName(filename),
		VehicleID:       first.VehicleID,
		Events:          events,
		StartTime:       first.Timestamp,
		EndTime:         last.Timestamp,
		Status:          terminalStatus(events),
		TotalDistance:   totalDistance(events),
		PlannedDistance: first.PlannedDistanceKm,
	}, nil
}

func tripName(filename string) string {
	if name, ok := tripNames[filename]; ok {
		return name
	}
	name := strings.TrimSuffix(filename, ".json")
	return strings.ReplaceAll(name, "_", " ")
}

// terminalStatus derives the trip's final status from the complete log.
// Cancellation wins over completion, which wins over technical trouble.
func terminalStatus(events []model.Event) model.TripStatus {
	var hasCompleted, hasTrouble bool
	for _, e := range events {
		switch e.EventType {
		case model.EventTripCancelled:
			return model.StatusCancelled
		case model.EventTripCompleted:
			hasCompleted = true
		case model.EventDeviceError, model.EventSignalLost:
			hasTrouble = true
		}
	}
	if hasCompleted {
		return model.StatusCompleted
	}
	if hasTrouble {
		return model.StatusTechnicalIssues
	}
	return model.StatusInProgress
}

// totalDistance prefers the last event's travelled distance; failing
// that, the first nonzero total_distance_km anywhere in the log.
func totalDistance(events []model.Event) *float64 {
	last := events[len(events)-1]
	if last.DistanceTravelledKm != nil && *last.DistanceTravelledKm != 0 {
		return last.DistanceTravelledKm
	}
	for _, e := range events {
		if e.TotalDistanceKm != nil && *e.TotalDistanceKm != 0 {
			return e.TotalDistanceKm
		}
	}
	return nil
}

// All returns trips in discovery order.
func (r *TripRepository) All() []*model.Trip {
	trips := make([]*model.Trip, 0, len(r.order))
	for _, id := range r.order {
		trips = append(trips, r.trips[id])
	}
	return trips
}

func (r *TripRepository) ByID(tripID string) (*model.Trip, bool) {
	trip, ok := r.trips[tripID]
	return trip, ok
}

// Events returns the ordered event log for a trip, empty when unknown.
func (r *TripRepository) Events(tripID string) []model.Event {
	trip, ok := r.trips[tripID]
	if !ok {
		return []model.Event{}
	}
	return trip.Events
}
