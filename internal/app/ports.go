package app

import (
	"context"

	"github.com/alexanderramin/loadline/internal/domain"
)

type ImportFeedUseCase interface {
	ImportFeed(ctx context.Context, path string) (*ImportResult, error)
	ImportFeedData(ctx context.Context, data []byte) (*ImportResult, error)
}

type CapacityUseCase interface {
	Capacity(ctx context.Context, req CapacityRequest) (*CapacityResponse, error)
}

type ForecastUseCase interface {
	Forecast(ctx context.Context, req ForecastRequest) (*ForecastResponse, error)
}

type FlexibilityUseCase interface {
	Flexibility(ctx context.Context, req FlexibilityRequest) (*FlexibilityResponse, error)
}

type DependencyUseCase interface {
	Dependencies(ctx context.Context, req DependencyRequest) (*DependencyResponse, error)
}

type LogTimeUseCase interface {
	LogTime(ctx context.Context, e *domain.TimeEntry) error
}
