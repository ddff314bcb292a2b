package services_test

import (
	"math/rand"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow    = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	testMaxAge = 15 * time.Minute
)

func driverAt(t *testing.T, lat, lon float64) *driver.Driver {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	reportedAt := testNow.Add(-time.Minute)

	aggregate, err := driver.RestoreDriver(
		kernel.NewUUID(), "Driver", true, true, &point, &reportedAt)
	require.NoError(t, err)
	return aggregate
}

func TestGeoIndex_SelectCandidates(t *testing.T) {
	geoIndex := services.NewGeoIndex()
	origin, err := kernel.NewGeoPoint(24.7136, 46.6753)
	require.NoError(t, err)

	t.Run("should keep only drivers inside the radius", func(t *testing.T) {
		near := driverAt(t, 24.7200, 46.6800)   // well under 10 km
		far := driverAt(t, 25.5000, 46.6753)    // ~87 km north
		border := driverAt(t, 24.8036, 46.6753) // ~10.01 km north

		candidates, err := geoIndex.SelectCandidates(origin,
			[]*driver.Driver{far, near, border}, 10, testNow, testMaxAge)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.True(t, candidates[0].DriverID.IsEqual(near.ID()))
	})

	t.Run("should order candidates nearest first", func(t *testing.T) {
		d1 := driverAt(t, 24.7500, 46.6753)
		d2 := driverAt(t, 24.7200, 46.6753)
		d3 := driverAt(t, 24.7400, 46.6753)

		candidates, err := geoIndex.SelectCandidates(origin,
			[]*driver.Driver{d1, d2, d3}, 10, testNow, testMaxAge)

		require.NoError(t, err)
		require.Len(t, candidates, 3)
		assert.True(t, candidates[0].DriverID.IsEqual(d2.ID()))
		assert.True(t, candidates[1].DriverID.IsEqual(d3.ID()))
		assert.True(t, candidates[2].DriverID.IsEqual(d1.ID()))
		assert.LessOrEqual(t, candidates[0].DistanceKm, candidates[1].DistanceKm)
		assert.LessOrEqual(t, candidates[1].DistanceKm, candidates[2].DistanceKm)
	})

	t.Run("should skip drivers with stale or missing fixes", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(24.7200, 46.6800)
		require.NoError(t, err)
		staleAt := testNow.Add(-time.Hour)

		stale, err := driver.RestoreDriver(kernel.NewUUID(), "Stale", true, true, &point, &staleAt)
		require.NoError(t, err)
		noFix, err := driver.RestoreDriver(kernel.NewUUID(), "NoFix", true, true, nil, nil)
		require.NoError(t, err)

		candidates, err := geoIndex.SelectCandidates(origin,
			[]*driver.Driver{stale, noFix}, 10, testNow, testMaxAge)

		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("should skip inactive and unapproved drivers", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(24.7200, 46.6800)
		require.NoError(t, err)
		reportedAt := testNow.Add(-time.Minute)

		offShift, err := driver.RestoreDriver(kernel.NewUUID(), "Off", false, true, &point, &reportedAt)
		require.NoError(t, err)
		unapproved, err := driver.RestoreDriver(kernel.NewUUID(), "New", true, false, &point, &reportedAt)
		require.NoError(t, err)

		candidates, err := geoIndex.SelectCandidates(origin,
			[]*driver.Driver{offShift, unapproved}, 10, testNow, testMaxAge)

		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("should return an empty set for no drivers", func(t *testing.T) {
		candidates, err := geoIndex.SelectCandidates(origin, nil, 10, testNow, testMaxAge)

		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("should reject a non-positive radius", func(t *testing.T) {
		_, err := geoIndex.SelectCandidates(origin, nil, 0, testNow, testMaxAge)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an unconstructed origin", func(t *testing.T) {
		_, err := geoIndex.SelectCandidates(kernel.GeoPoint{}, nil, 10, testNow, testMaxAge)

		require.Error(t, err)
	})

	t.Run("should never include a candidate beyond the radius", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		drivers := make([]*driver.Driver, 0, 200)
		for range 200 {
			lat := 24.7136 + (rng.Float64()-0.5)*0.5
			lon := 46.6753 + (rng.Float64()-0.5)*0.5
			drivers = append(drivers, driverAt(t, lat, lon))
		}

		radius := 1 + rng.Float64()*20
		candidates, err := geoIndex.SelectCandidates(origin, drivers, radius, testNow, testMaxAge)

		require.NoError(t, err)
		for _, candidate := range candidates {
			distance, err := origin.DistanceKm(candidate.Point)
			require.NoError(t, err)
			assert.LessOrEqual(t, distance, radius)
		}
	})
}
