package model

import "time"

// Recognized event types. The event_type field is an open string tag:
// unknown values are carried through untouched.
const (
	EventTripStarted      = "trip_started"
	EventTripCompleted    = "trip_completed"
	EventTripCancelled    = "trip_cancelled"
	EventDeviceError      = "device_error"
	EventSignalLost       = "signal_lost"
	EventSignalRecovered  = "signal_recovered"
	EventSpeedViolation   = "speed_violation"
	EventBatteryLow       = "battery_low"
	EventFuelLevelLow     = "fuel_level_low"
	EventVehicleTelemetry = "vehicle_telemetry"
)

type Location struct {
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
	AltitudeMeters *float64 `json:"altitude_meters,omitempty"`
}

type Movement struct {
	SpeedKmh       float64 `json:"speed_kmh"`
	HeadingDegrees float64 `json:"heading_degrees"`
	Moving         bool    `json:"moving"`
}

type Device struct {
	BatteryLevel float64 `json:"battery_level"`
	Charging     bool    `json:"charging"`
}

// Event is one immutable telemetry or alert fact. Payload fields vary by
// event type, so everything beyond the envelope is optional.
type Event struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	VehicleID string    `json:"vehicle_id"`
	TripID    string    `json:"trip_id"`
	DeviceID  string    `json:"device_id,omitempty"`

	Location *Location `json:"location,omitempty"`
	Movement *Movement `json:"movement,omitempty"`
	Device   *Device   `json:"device,omitempty"`

	DistanceTravelledKm *float64 `json:"distance_travelled_km,omitempty"`
	TotalDistanceKm     *float64 `json:"total_distance_km,omitempty"`
	PlannedDistanceKm   *float64 `json:"planned_distance_km,omitempty"`

	SignalQuality string   `json:"signal_quality,omitempty"`
	SpeedLimitKmh *float64 `json:"speed_limit_kmh,omitempty"`
	Severity      string   `json:"severity,omitempty"`
	ErrorMessage  string   `json:"error_message,omitempty"`
	Overspeed     *bool    `json:"overspeed,omitempty"`
}

// IsAlert reports whether the event counts toward alert totals.
func (e Event) IsAlert() bool {
	switch e.EventType {
	case EventSpeedViolation, EventBatteryLow, EventFuelLevelLow, EventDeviceError:
		return true
	}
	return false
}
