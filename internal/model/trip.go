package model

import "time"

type TripStatus string

const (
	StatusInProgress      TripStatus = "in_progress"
	StatusCompleted       TripStatus = "completed"
	StatusCancelled       TripStatus = "cancelled"
	StatusTechnicalIssues TripStatus = "technical_issues"
)

// Trip is the aggregate derived from one event batch at load time.
// Immutable once constructed; Events are sorted by timestamp ascending.
type Trip struct {
	ID              string
	Name            string
	VehicleID       string
	Events          []Event
	StartTime       time.Time
	EndTime         time.Time
	Status          TripStatus
	TotalDistance   *float64
	PlannedDistance *float64
}

// TripSummary is the list/detail view served over the API.
type TripSummary struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	VehicleID       string     `json:"vehicle_id"`
	Status          TripStatus `json:"status"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	TotalDistance   *float64   `json:"totalDistance"`
	PlannedDistance *float64   `json:"plannedDistance"`
	EventCount      int        `json:"eventCount"`
}

func (t *Trip) Summary() TripSummary {
	return TripSummary{
		ID:              t.ID,
		Name:            t.Name,
		VehicleID:       t.VehicleID,
		Status:          t.Status,
		StartTime:       t.StartTime,
		EndTime:         t.EndTime,
		TotalDistance:   t.TotalDistance,
		PlannedDistance: t.PlannedDistance,
		EventCount:      len(t.Events),
	}
}
