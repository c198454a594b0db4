package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup/internal/client"
	"github.com/kjstillabower/weather-lookup/internal/observability"
	"github.com/kjstillabower/weather-lookup/internal/session"
	"github.com/kjstillabower/weather-lookup/internal/traffic"
	"github.com/kjstillabower/weather-lookup/internal/view"
)

// LookupService owns the per-session view state: each submission resolves a
// fresh state and replaces whatever the session held before.
type LookupService struct {
	reconciler *Reconciler
	store      session.Store
	sessionTTL time.Duration
	mapsURL    string
}

// NewLookupService wires a client and session store. mapsURL is the map service
// root used for place links, without trailing slash.
func NewLookupService(c client.WeatherClient, store session.Store, sessionTTL time.Duration, mapsURL string, outcomes *traffic.Tracker) *LookupService {
	return &LookupService{
		reconciler: NewReconciler(c, outcomes),
		store:      store,
		sessionTTL: sessionTTL,
		mapsURL:    mapsURL,
	}
}

// Lookup resolves query without touching any session.
func (s *LookupService) Lookup(ctx context.Context, query string) view.Page {
	return view.Render(s.reconciler.Resolve(ctx, query), s.mapsURL)
}

// Submit resolves query and stores the result as the session's state.
//
// Overlapping submissions for one session are not ordered: each stores its state
// when its response arrives, so the last response to arrive wins. The fetch and
// the store write are detached from ctx cancellation so a visitor leaving the
// page does not abort them.
func (s *LookupService) Submit(ctx context.Context, sessionID, query string) view.Page {
	ctx = context.WithoutCancel(ctx)
	state := s.reconciler.Resolve(ctx, query)

	if err := s.store.Set(ctx, sessionID, view.Encode(state), s.sessionTTL); err != nil {
		observability.SessionStoreErrorsTotal.WithLabelValues("set").Inc()
		observability.LoggerFromContext(ctx).Warn("session store set failed", zap.Error(err))
	}
	return view.Render(state, s.mapsURL)
}

// Current returns the page for the session's stored state, Idle when there is none
// or the store cannot be read.
func (s *LookupService) Current(ctx context.Context, sessionID string) view.Page {
	snap, ok, err := s.store.Get(ctx, sessionID)
	if err != nil {
		observability.SessionStoreErrorsTotal.WithLabelValues("get").Inc()
		observability.LoggerFromContext(ctx).Warn("session store get failed", zap.Error(err))
		return view.Render(view.Idle{}, s.mapsURL)
	}
	if !ok {
		return view.Render(view.Idle{}, s.mapsURL)
	}
	return view.Render(view.Decode(snap), s.mapsURL)
}
