package service

import (
	"testing"
	"time"

	"fleet-tracking-service/internal/model"
)

var base = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func telemetry(minutes int) model.Event {
	return event(model.EventVehicleTelemetry, minutes)
}

func event(eventType string, minutes int) model.Event {
	return model.Event{
		EventID:   eventType,
		EventType: eventType,
		Timestamp: at(minutes),
		VehicleID: "veh-1",
		TripID:    "trip-1",
	}
}

func troubledTrip() *model.Trip {
	events := []model.Event{
		event(model.EventTripStarted, 0),
		event(model.EventDeviceError, 10),
		event(model.EventDeviceError, 20),
		event(model.EventDeviceError, 30),
		event(model.EventDeviceError, 40),
	}
	return &model.Trip{
		ID:        "trip-1",
		Events:    events,
		StartTime: at(0),
		EndTime:   at(40),
		Status:    model.StatusTechnicalIssues,
	}
}

func TestStatusAtInFlightBelowErrorLimit(t *testing.T) {
	trip := troubledTrip()
	query := at(25)

	got := statusAt(trip, relevantEvents(trip.Events, query), query)
	if got != model.StatusInProgress {
		t.Fatalf("status at %v = %q, want %q", query, got, model.StatusInProgress)
	}
}

func TestStatusAtAfterEndWithErrorsOverLimit(t *testing.T) {
	trip := troubledTrip()
	query := at(45)

	got := statusAt(trip, relevantEvents(trip.Events, query), query)
	if got != model.StatusTechnicalIssues {
		t.Fatalf("status at %v = %q, want %q", query, got, model.StatusTechnicalIssues)
	}
}

func TestStatusAtInFlightOverErrorLimit(t *testing.T) {
	events := []model.Event{event(model.EventTripStarted, 0)}
	for i := 1; i <= 6; i++ {
		events = append(events, event(model.EventDeviceError, i))
	}
	events = append(events, telemetry(100))
	trip := &model.Trip{
		ID:        "trip-1",
		Events:    events,
		StartTime: at(0),
		EndTime:   at(100),
		Status:    model.StatusTechnicalIssues,
	}
	query := at(10)

	got := statusAt(trip, relevantEvents(trip.Events, query), query)
	if got != model.StatusTechnicalIssues {
		t.Fatalf("status = %q, want %q after 6 device errors in flight", got, model.StatusTechnicalIssues)
	}
}

func TestStatusAtAfterEndFallsBackToTerminal(t *testing.T) {
	events := []model.Event{
		event(model.EventTripStarted, 0),
		event(model.EventDeviceError, 10),
		telemetry(20),
	}
	trip := &model.Trip{
		ID:        "trip-1",
		Events:    events,
		StartTime: at(0),
		EndTime:   at(20),
		Status:    model.StatusTechnicalIssues,
	}
	query := at(30)

	got := statusAt(trip, relevantEvents(trip.Events, query), query)
	if got != model.StatusTechnicalIssues {
		t.Fatalf("status = %q, want terminal fallback %q", got, model.StatusTechnicalIssues)
	}
}

func TestStatusAtCompletedRequiresElapsedEnd(t *testing.T) {
	events := []model.Event{
		event(model.EventTripStarted, 0),
		event(model.EventTripCompleted, 30),
		telemetry(40),
	}
	trip := &model.Trip{
		ID:        "trip-1",
		Events:    events,
		StartTime: at(0),
		EndTime:   at(40),
		Status:    model.StatusCompleted,
	}

	query := at(35)
	if got := statusAt(trip, relevantEvents(trip.Events, query), query); got != model.StatusInProgress {
		t.Fatalf("before end: status = %q, want %q", got, model.StatusInProgress)
	}

	query = at(40)
	if got := statusAt(trip, relevantEvents(trip.Events, query), query); got != model.StatusCompleted {
		t.Fatalf("at end: status = %q, want %q", got, model.StatusCompleted)
	}
}

func TestStatusAtCancelledIsAbsorbing(t *testing.T) {
	events := []model.Event{
		event(model.EventTripStarted, 0),
		event(model.EventTripCancelled, 5),
		event(model.EventTripCompleted, 10),
		event(model.EventDeviceError, 15),
		event(model.EventDeviceError, 16),
		event(model.EventDeviceError, 17),
		event(model.EventDeviceError, 18),
	}
	trip := &model.Trip{
		ID:        "trip-1",
		Events:    events,
		StartTime: at(0),
		EndTime:   at(18),
		Status:    model.StatusCancelled,
	}

	for _, minutes := range []int{5, 10, 17, 18, 500} {
		query := at(minutes)
		if got := statusAt(trip, relevantEvents(trip.Events, query), query); got != model.StatusCancelled {
			t.Fatalf("status at +%dm = %q, want %q", minutes, got, model.StatusCancelled)
		}
	}
}

func TestRelevantEventsPrefixCut(t *testing.T) {
	events := []model.Event{telemetry(0), telemetry(10), telemetry(20)}

	if got := relevantEvents(events, at(10)); len(got) != 2 {
		t.Fatalf("inclusive cut returned %d events, want 2", len(got))
	}
	if got := relevantEvents(events, at(-5)); len(got) != 0 {
		t.Fatalf("pre-start cut returned %d events, want 0", len(got))
	}
	if got := relevantEvents(events, at(99)); len(got) != 3 {
		t.Fatalf("late cut returned %d events, want 3", len(got))
	}
}
