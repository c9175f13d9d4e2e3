package service

import (
	"errors"
	"math"
	"time"

	"fleet-tracking-service/internal/model"
	"fleet-tracking-service/internal/repository"
)

var ErrTripNotFound = errors.New("trip not found")

// MetricsService computes point-in-time trip and fleet snapshots over the
// loaded event table. Every computation is a pure read; the repository is
// immutable after load, so calls are safe to run concurrently.
type MetricsService struct {
	trips *repository.TripRepository
}

func NewMetricsService(trips *repository.TripRepository) *MetricsService {
	return &MetricsService{trips: trips}
}

func (s *MetricsService) ListTrips() []model.TripSummary {
	trips := s.trips.All()
	summaries := make([]model.TripSummary, 0, len(trips))
	for _, trip := range trips {
		summaries = append(summaries, trip.Summary())
	}
	return summaries
}

func (s *MetricsService) GetTrip(tripID string) (model.TripSummary, error) {
	trip, ok := s.trips.ByID(tripID)
	if !ok {
		return model.TripSummary{}, ErrTripNotFound
	}
	return trip.Summary(), nil
}

// TripEvents returns a trip's events, optionally cut at an inclusive
// upper timestamp and truncated to the first limit entries. An unknown
// trip yields an empty slice.
func (s *MetricsService) TripEvents(tripID string, upTo *time.Time, limit int) []model.Event {
	events := s.trips.Events(tripID)
	if upTo != nil {
		events = relevantEvents(events, *upTo)
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

// CurrentEvents returns, per trip, the latest event at or before the
// query instant. Trips with no event yet are absent from the result.
func (s *MetricsService) CurrentEvents(at time.Time) map[string]model.Event {
	current := make(map[string]model.Event)
	for _, trip := range s.trips.All() {
		relevant := relevantEvents(trip.Events, at)
		if len(relevant) > 0 {
			current[trip.ID] = relevant[len(relevant)-1]
		}
	}
	return current
}

// TripMetrics computes the snapshot for one trip as of the query instant.
//
// Completion deliberately uses the trip's final stored distance rather
// than the time-filtered one; the fleet aggregate does the opposite.
// Do not unify the two without a product decision.
func (s *MetricsService) TripMetrics(tripID string, at time.Time) (*model.TripMetrics, error) {
	trip, ok := s.trips.ByID(tripID)
	if !ok {
		return nil, ErrTripNotFound
	}

	relevant := relevantEvents(trip.Events, at)
	last := trip.Events[0]
	if len(relevant) > 0 {
		last = relevant[len(relevant)-1]
	}

	planned := valueOrZero(trip.PlannedDistance)
	total := valueOrZero(trip.TotalDistance)

	completion := 0
	switch {
	case planned != 0 && total != 0:
		completion = int(math.Round(total / planned * 100))
		if completion > 100 {
			completion = 100
		}
	case trip.Status == model.StatusCompleted:
		completion = 100
	}

	var totalSpeed float64
	speedCount := 0
	totalAlerts, signalIssues, deviceErrors := 0, 0, 0
	for _, e := range relevant {
		if e.Movement != nil && e.Movement.SpeedKmh != 0 {
			totalSpeed += e.Movement.SpeedKmh
			speedCount++
		}
		if e.IsAlert() {
			totalAlerts++
		}
		switch e.EventType {
		case model.EventSignalLost:
			signalIssues++
		case model.EventDeviceError:
			deviceErrors++
		}
	}

	averageSpeed := 0.0
	if speedCount > 0 {
		averageSpeed = round2(totalSpeed / float64(speedCount))
	}
	currentSpeed := 0.0
	if last.Movement != nil {
		currentSpeed = round2(last.Movement.SpeedKmh)
	}

	remaining := planned - total
	if remaining < 0 {
		remaining = 0
	}

	var endTime *time.Time
	if trip.Status == model.StatusCompleted {
		end := trip.EndTime
		endTime = &end
	}

	metrics := &model.TripMetrics{
		TripID:               trip.ID,
		Name:                 trip.Name,
		Status:               statusAt(trip, relevant, at),
		CompletionPercentage: completion,
		TotalDistance:        round2(total),
		PlannedDistance:      round2(planned),
		DistanceRemaining:    round2(remaining),
		AverageSpeed:         averageSpeed,
		CurrentSpeed:         currentSpeed,
		TotalAlerts:          totalAlerts,
		SignalIssues:         signalIssues,
		DeviceErrors:         deviceErrors,
		StartTime:            trip.StartTime,
		EndTime:              endTime,
		DurationMinutes:      int(math.Round(at.Sub(trip.StartTime).Minutes())),
	}
	if last.Location != nil {
		location := *last.Location
		metrics.CurrentLocation = &location
	}
	return metrics, nil
}

// FleetMetrics folds every started trip into fleet-wide counters as of
// the query instant. Trips that have not started yet contribute to
// nothing except TotalTrips.
func (s *MetricsService) FleetMetrics(at time.Time) model.FleetMetrics {
	trips := s.trips.All()
	metrics := model.FleetMetrics{TotalTrips: len(trips)}

	var totalDistance, totalSpeed float64
	speedCount := 0

	for _, trip := range trips {
		if at.Before(trip.StartTime) {
			continue
		}

		relevant := relevantEvents(trip.Events, at)
		var last *model.Event
		if len(relevant) > 0 {
			last = &relevant[len(relevant)-1]
		}

		switch statusAt(trip, relevant, at) {
		case model.StatusCompleted:
			metrics.CompletedTrips++
		case model.StatusCancelled:
			metrics.CancelledTrips++
		case model.StatusTechnicalIssues:
			metrics.TechnicalIssuesTrips++
		default:
			metrics.ActiveTrips++
		}

		// Distance covered so far: the last relevant event's travelled
		// distance, or its final total only once the trip has actually
		// wrapped up. A final-distance field must not leak into an
		// in-progress snapshot.
		currentDistance := 0.0
		if last != nil {
			if last.DistanceTravelledKm != nil {
				currentDistance = *last.DistanceTravelledKm
			} else if last.TotalDistanceKm != nil &&
				last.EventType == model.EventTripCompleted && !at.Before(trip.EndTime) {
				currentDistance = *last.TotalDistanceKm
			}
		}

		if trip.PlannedDistance != nil && *trip.PlannedDistance > 0 {
			completion := currentDistance / *trip.PlannedDistance * 100
			switch {
			case completion <= 25:
				metrics.CompletionRanges.UpTo25++
			case completion <= 50:
				metrics.CompletionRanges.UpTo50++
			case completion <= 80:
				metrics.CompletionRanges.UpTo80++
			default:
				metrics.CompletionRanges.UpTo100++
			}
			totalDistance += currentDistance
		}

		for _, e := range relevant {
			if e.Movement != nil && e.Movement.SpeedKmh != 0 {
				totalSpeed += e.Movement.SpeedKmh
				speedCount++
			}
			if e.IsAlert() {
				metrics.TotalAlerts++
			}
		}
	}

	metrics.TotalDistance = round2(totalDistance)
	if speedCount > 0 {
		metrics.AverageSpeed = round2(totalSpeed / float64(speedCount))
	}
	return metrics
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
