package service

import (
	"time"

	"fleet-tracking-service/internal/model"
)

// Device-error thresholds for flagging technical trouble. A trip already
// past its scheduled end is flagged on fewer errors than one still
// running. The two constants are a deliberate policy asymmetry; keep
// them separate.
const (
	deviceErrorLimitAfterEnd = 3
	deviceErrorLimitInFlight = 5
)

// statusAt resolves the trip's lifecycle status as observed at the query
// instant, looking only at the already time-filtered relevant events.
// Cancellation is absorbing; completion requires both a trip_completed
// event in the window and an elapsed end time.
func statusAt(trip *model.Trip, relevant []model.Event, at time.Time) model.TripStatus {
	for _, e := range relevant {
		if e.EventType == model.EventTripCancelled {
			return model.StatusCancelled
		}
	}

	deviceErrors := 0
	completed := false
	for _, e := range relevant {
		switch e.EventType {
		case model.EventDeviceError:
			deviceErrors++
		case model.EventTripCompleted:
			completed = true
		}
	}

	if !at.Before(trip.EndTime) {
		if completed {
			return model.StatusCompleted
		}
		if deviceErrors > deviceErrorLimitAfterEnd {
			return model.StatusTechnicalIssues
		}
		// Ended without a completion marker and few errors: fall back to
		// the status derived from the full log at load time.
		return trip.Status
	}

	if deviceErrors > deviceErrorLimitInFlight {
		return model.StatusTechnicalIssues
	}
	return model.StatusInProgress
}

// relevantEvents returns the prefix of events at or before the query
// instant. Events are already sorted, so this is a prefix cut.
func relevantEvents(events []model.Event, at time.Time) []model.Event {
	cut := len(events)
	for i, e := range events {
		if e.Timestamp.After(at) {
			cut = i
			break
		}
	}
	return events[:cut]
}
