package cli

import "github.com/alexanderramin/loadline/internal/app"

func (a *App) importFeedUseCase() app.ImportFeedUseCase {
	if a.ImportFeed != nil {
		return a.ImportFeed
	}
	return a.Import
}

func (a *App) logTimeUseCase() app.LogTimeUseCase {
	if a.LogTime != nil {
		return a.LogTime
	}
	return a.TimeLog
}

func (a *App) forecastUseCase() app.ForecastUseCase {
	if a.Forecast != nil {
		return a.Forecast
	}
	return a.Capacity
}
