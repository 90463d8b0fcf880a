package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnsim/dtnsim/config"
)

func TestBuildGettingStartedScenario_MatchesDocumentedCounts(t *testing.T) {
	cfg := config.RunConfig{
		HorizonMs:       1_000_000,
		DefaultDatarate: 10,
		DefaultDelay:    1,
		Router:          config.RouterBasic,
	}
	s, err := buildGettingStartedScenario(cfg)
	require.NoError(t, err)

	s.Run(cfg.HorizonMs)
	summary := s.Summary()

	// floor((1_000_000-0)/(100_000/10)) = 100 packets per direction, two
	// directions (a->c and c->a).
	assert.Equal(t, 200, summary.TotalPacketsGenerated)
	assert.Equal(t, 0, summary.TotalPacketsEnqueuedInContacts)
	assert.LessOrEqual(t, summary.TotalPacketsEnqueuedInLimbos, summary.TotalPacketsGenerated)
}

func TestBuildGettingStartedScenario_RejectsUnknownRouterFlavor(t *testing.T) {
	cfg := config.RunConfig{Router: "not-a-flavor"}
	_, err := buildGettingStartedScenario(cfg)
	assert.Error(t, err)
}
