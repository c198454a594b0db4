//go:build integration
// +build integration

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjstillabower/weather-lookup/internal/testhelpers"
	"github.com/kjstillabower/weather-lookup/internal/view"
)

// TestLookupService_LiveProvider submits a real city and a nonsense query to the
// live provider and checks both land in the expected states.
func TestLookupService_LiveProvider(t *testing.T) {
	cfg := testhelpers.GetIntegrationConfig(t)
	lookups, outcomes := testhelpers.SetupIntegrationService(t, cfg)
	ctx := context.Background()

	page := lookups.Submit(ctx, "integration-session", "London")
	require.Equal(t, view.StatusSuccess, page.Status)
	require.NotNil(t, page.Result)
	assert.NotEmpty(t, page.Result.Name)
	assert.NotEmpty(t, page.Result.Condition)
	assert.Equal(t, "https://www.google.com/maps/place/London/", page.MapHref)

	page = lookups.Submit(ctx, "integration-session", "Zzzxyz123")
	assert.Equal(t, view.StatusError, page.Status)
	assert.Equal(t, view.NotFoundMessage, page.Message)
	assert.Equal(t, view.InertHref, page.MapHref)

	current := lookups.Current(ctx, "integration-session")
	assert.Equal(t, view.StatusError, current.Status)

	found, notFound := outcomes.Counts(time.Hour)
	assert.Equal(t, 1, found)
	assert.Equal(t, 1, notFound)
}
