package app

import (
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/scheduler"
)

// CapacityRequest asks for the even-spread load baseline over [Start, End].
type CapacityRequest struct {
	Start       time.Time
	End         time.Time
	Granularity domain.Granularity
	// AssigneeID limits the load to one user's items; nil counts every open item.
	AssigneeID *int
}

type CapacityResponse struct {
	Granularity        domain.Granularity
	Periods            []scheduler.PeriodCapacity
	TotalLoadHours     float64
	TotalCapacityHours float64
}

// ForecastRequest asks for the greedy scheduled forecast over [Start, End].
type ForecastRequest struct {
	Start       time.Time
	End         time.Time
	Granularity domain.Granularity
	// AssigneeID selects whose items are scheduled. It is also the user other
	// people's work is compared against when detecting external blocks.
	AssigneeID *int
	// Now defaults to the service clock.
	Now *time.Time
	// SkipActuals turns off hybrid reconciliation with logged time.
	SkipActuals bool
}

// ItemForecastView is a per-item forecast with the item's display fields.
type ItemForecastView struct {
	scheduler.ItemForecast
	Subject string
	DueDate *time.Time
	// Late is set when work is left over or the finish lands after the due date.
	Late bool
}

type ForecastResponse struct {
	Granularity domain.Granularity
	Periods     []scheduler.PeriodCapacity
	Items       []ItemForecastView
	Warnings    []string
}

type CapacityErrorCode string

const (
	CapacityErrInvalidRange       CapacityErrorCode = "INVALID_RANGE"
	CapacityErrInvalidSchedule    CapacityErrorCode = "INVALID_SCHEDULE"
	CapacityErrInvalidGranularity CapacityErrorCode = "INVALID_GRANULARITY"
)

type CapacityError struct {
	Code    CapacityErrorCode
	Message string
	Err     error
}

func (e *CapacityError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *CapacityError) Unwrap() error {
	return e.Err
}
