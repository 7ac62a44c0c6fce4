package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callforecast/internal/model"
)

func TestParseUnitFlags(t *testing.T) {
	census, err := parseUnitFlags([]string{"Floor1=20", "ICU West=8"})
	require.NoError(t, err)

	assert.Equal(t, model.CensusInput{
		"Floor1":   {model.CensusRoomsWithPatients: 20},
		"ICU West": {model.CensusRoomsWithPatients: 8},
	}, census)
}

func TestParseUnitFlags_Invalid(t *testing.T) {
	_, err := parseUnitFlags([]string{"Floor1"})
	assert.Error(t, err, "missing census count")

	_, err = parseUnitFlags([]string{"Floor1=twenty"})
	assert.Error(t, err, "non-numeric census")
}

func TestResolveStart(t *testing.T) {
	start, err := resolveStart("2024-03-04T08:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 8, 0, 0, 0, time.Local), start)

	start, err = resolveStart("")
	require.NoError(t, err)
	assert.Zero(t, start.Minute(), "default start is aligned to the hour")
	assert.True(t, start.After(time.Now()), "default start is the next full hour")
}
