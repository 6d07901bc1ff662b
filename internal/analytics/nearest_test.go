package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourvoice/mgnrega-api/internal/models"
)

var chhattisgarhDistricts = []models.District{
	{ID: 1, Name: "Raipur", State: "Chhattisgarh", DistrictCode: "CG01", Latitude: 21.2514, Longitude: 81.6296},
	{ID: 2, Name: "Durg", State: "Chhattisgarh", DistrictCode: "CG02", Latitude: 21.1904, Longitude: 81.2849},
	{ID: 3, Name: "Bilaspur", State: "Chhattisgarh", DistrictCode: "CG03", Latitude: 22.0797, Longitude: 82.1409},
}

func TestNearest_ExactCoordinateMatch(t *testing.T) {
	got, err := Nearest(chhattisgarhDistricts, 21.1904, 81.2849)

	require.NoError(t, err)
	assert.Equal(t, "Durg", got.District.Name)
	assert.Zero(t, got.Distance)
}

func TestNearest_PicksClosest(t *testing.T) {
	// A point just north of Bilaspur.
	got, err := Nearest(chhattisgarhDistricts, 22.2, 82.1)

	require.NoError(t, err)
	assert.Equal(t, "Bilaspur", got.District.Name)
	assert.Greater(t, got.Distance, 0.0)
}

func TestNearest_EmptyReferenceSet(t *testing.T) {
	_, err := Nearest(nil, 21.0, 81.0)

	assert.ErrorIs(t, err, ErrNoDistricts)
}

func TestNearest_TieBreaksToFirstMatch(t *testing.T) {
	duplicated := []models.District{
		{ID: 10, Name: "First", Latitude: 20.0, Longitude: 80.0},
		{ID: 11, Name: "Second", Latitude: 20.0, Longitude: 80.0},
	}

	got, err := Nearest(duplicated, 20.0, 80.0)

	require.NoError(t, err)
	assert.Equal(t, "First", got.District.Name)
}
