package model

import "time"

// TripMetrics is a point-in-time snapshot for one trip. Distances and
// speeds are rounded to two decimals, percentages to whole numbers.
type TripMetrics struct {
	TripID               string     `json:"tripId"`
	Name                 string     `json:"name"`
	Status               TripStatus `json:"status"`
	CompletionPercentage int        `json:"completionPercentage"`
	TotalDistance        float64    `json:"totalDistance"`
	PlannedDistance      float64    `json:"plannedDistance"`
	DistanceRemaining    float64    `json:"distanceRemaining"`
	AverageSpeed         float64    `json:"averageSpeed"`
	CurrentSpeed         float64    `json:"currentSpeed"`
	TotalAlerts          int        `json:"totalAlerts"`
	SignalIssues         int        `json:"signalIssues"`
	DeviceErrors         int        `json:"deviceErrors"`
	StartTime            time.Time  `json:"startTime"`
	EndTime              *time.Time `json:"endTime,omitempty"`
	DurationMinutes      int        `json:"duration"`
	CurrentLocation      *Location  `json:"currentLocation,omitempty"`
}

// CompletionRanges buckets trips by completion percentage. Each range is
// closed at the top: a trip at exactly 25% lands in the 0-25% bucket.
type CompletionRanges struct {
	UpTo25  int `json:"0-25%"`
	UpTo50  int `json:"25-50%"`
	UpTo80  int `json:"50-80%"`
	UpTo100 int `json:"80-100%"`
}

// FleetMetrics is the fleet-wide snapshot at one simulation instant.
// TotalTrips counts every loaded trip; the status counters only cover
// trips that had started by the query time.
type FleetMetrics struct {
	TotalTrips           int              `json:"totalTrips"`
	ActiveTrips          int              `json:"activeTrips"`
	CompletedTrips       int              `json:"completedTrips"`
	CancelledTrips       int              `json:"cancelledTrips"`
	TechnicalIssuesTrips int              `json:"technicalIssuesTrips"`
	CompletionRanges     CompletionRanges `json:"completionRanges"`
	TotalDistance        float64          `json:"totalDistance"`
	AverageSpeed         float64          `json:"averageSpeed"`
	TotalAlerts          int              `json:"totalAlerts"`
}
