package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/kejaplus/backend/internal/domain/property"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/kejaplus/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and handles cleanup
func TestMain(m *testing.M) {
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

func newProperty(t *testing.T, name, location string, propertyType property.PropertyType, units int, rent int64) *property.Property {
	t.Helper()

	p, err := property.NewProperty(
		name,
		location,
		propertyType,
		units,
		valueobject.NewMoneyKES(decimal.NewFromInt(rent)),
		time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return p
}

// TestPropertyRepository_Integration tests the PropertyRepository against a real PostgreSQL database
func TestPropertyRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormPropertyRepository(testDB.DB)
	ctx := context.Background()

	t.Run("Save and FindByID", func(t *testing.T) {
		p := newProperty(t, "Makazi Court", "Kilimani, Nairobi", property.PropertyTypeApartment, 12, 25000)
		p.SetAmenities([]string{"borehole", "parking"})

		err := repo.Save(ctx, p)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, p.ID, found.ID)
		assert.Equal(t, "Makazi Court", found.Name)
		assert.Equal(t, "Kilimani, Nairobi", found.Location)
		assert.Equal(t, property.PropertyTypeApartment, found.Type)
		assert.Equal(t, 12, found.Units)
		assert.True(t, found.RentAmount.Equal(decimal.NewFromInt(25000)))
		assert.Equal(t, []string{"borehole", "parking"}, []string(found.Amenities))
	})

	t.Run("FindByID returns nil for missing property", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FindByName", func(t *testing.T) {
		p := newProperty(t, "Upendo Villas", "Nyali, Mombasa", property.PropertyTypeBungalow, 4, 45000)
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByName(ctx, "Upendo Villas")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, p.ID, found.ID)

		missing, err := repo.FindByName(ctx, "No Such Property")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("FindAll with type filter", func(t *testing.T) {
		commercial := newProperty(t, "Biashara Plaza", "CBD, Nakuru", property.PropertyTypeCommercial, 20, 60000)
		require.NoError(t, repo.Save(ctx, commercial))

		filterType := property.PropertyTypeCommercial
		results, err := repo.FindAll(ctx, property.PropertyFilter{Type: &filterType})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, commercial.ID, results[0].ID)
	})

	t.Run("FindAll with search", func(t *testing.T) {
		results, err := repo.FindAll(ctx, property.PropertyFilter{
			Filter: shared.Filter{Search: "makazi"},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Makazi Court", results[0].Name)
	})

	t.Run("Count", func(t *testing.T) {
		count, err := repo.Count(ctx, property.PropertyFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("Update occupancy snapshot", func(t *testing.T) {
		p, err := repo.FindByName(ctx, "Makazi Court")
		require.NoError(t, err)
		require.NotNil(t, p)

		require.NoError(t, p.RefreshOccupancySnapshot(9, time.Now()))
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, found.OccupiedUnits)
		assert.True(t, found.OccupancyRate.Equal(decimal.NewFromInt(9).Div(decimal.NewFromInt(12))))
		assert.NotNil(t, found.SnapshotAt)
	})

	t.Run("Delete", func(t *testing.T) {
		p := newProperty(t, "Tumaini Flats", "Kisumu", property.PropertyTypeMaisonette, 6, 18000)
		require.NoError(t, repo.Save(ctx, p))

		err := repo.Delete(ctx, p.ID)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		// Deleting again reports not found
		err = repo.Delete(ctx, p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
