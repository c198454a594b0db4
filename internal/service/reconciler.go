package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup/internal/client"
	"github.com/kjstillabower/weather-lookup/internal/observability"
	"github.com/kjstillabower/weather-lookup/internal/traffic"
	"github.com/kjstillabower/weather-lookup/internal/view"
)

// Reconciler turns one upstream fetch into a view.State.
type Reconciler struct {
	client   client.WeatherClient
	outcomes *traffic.Tracker
}

// NewReconciler returns a Reconciler. outcomes may be nil.
func NewReconciler(c client.WeatherClient, outcomes *traffic.Tracker) *Reconciler {
	return &Reconciler{client: c, outcomes: outcomes}
}

// Resolve performs exactly one upstream request for query and maps the outcome.
// Every failure, whatever its cause, resolves to view.NotFound. The query is
// passed through untouched, including the empty string.
func (r *Reconciler) Resolve(ctx context.Context, query string) view.State {
	logger := observability.LoggerFromContext(ctx)

	result, err := r.client.GetCurrentWeather(ctx, query)
	if err != nil {
		category := client.CategorizeError(err)
		observability.WeatherAPIErrorsTotal.WithLabelValues(string(category)).Inc()
		observability.RecordLookup("not_found", view.Neutral.Name)
		if r.outcomes != nil {
			r.outcomes.RecordNotFound()
		}
		logger.Debug("lookup failed",
			zap.String("query", query),
			zap.String("category", string(category)),
			zap.Error(err))
		return view.NotFound(query)
	}

	state := view.Success{Result: result, Query: query}
	bg := view.BackgroundOf(state)
	observability.RecordLookup("success", bg.Name)
	if r.outcomes != nil {
		r.outcomes.RecordFound()
	}
	logger.Debug("lookup succeeded",
		zap.String("query", query),
		zap.String("name", result.Name),
		zap.String("condition", result.Condition),
		zap.String("background", bg.Name))
	return state
}
