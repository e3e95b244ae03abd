package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldesk/internal/app"
	"hoteldesk/internal/domain"
)

func adjustmentsFixtures() (*fakeHotelAPI, *fakeRoomAPI) {
	hotels := &fakeHotelAPI{
		hotels: []domain.Hotel{{ID: 1, Name: "Grand"}, {ID: 2, Name: "Plaza"}},
		roomTypes: []domain.RoomType{
			{ID: 10, Name: "Standard", BaseRate: 100, HotelID: 1},
			{ID: 11, Name: "Deluxe", BaseRate: 200, HotelID: 1},
		},
	}
	rooms := &fakeRoomAPI{
		adjustments: []domain.RateAdjustment{
			{ID: 1, RoomTypeID: 10, AdjustmentAmount: 10, EffectiveDate: "2025-01-01", Reason: "new year"},
		},
	}
	return hotels, rooms
}

func TestRateAdjustments_LoadCascadesSelection(t *testing.T) {
	hotels, rooms := adjustmentsFixtures()
	c := app.NewRateAdjustmentsController(hotels, rooms)
	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.Equal(t, int64(1), v.SelectedHotelID, "first hotel auto-selected")
	assert.Equal(t, int64(10), v.SelectedRoomTypeID, "first room type auto-selected")
	require.Len(t, v.Adjustments, 1)
	assert.Equal(t, "new year", v.Adjustments[0].Reason)
}

func TestRateAdjustments_LoadWithNoHotels(t *testing.T) {
	c := app.NewRateAdjustmentsController(&fakeHotelAPI{}, &fakeRoomAPI{})
	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.Zero(t, v.SelectedHotelID)
	assert.True(t, v.Empty)
	assert.Empty(t, v.Error)
}

func TestRateAdjustments_SelectHotelClearsDependentState(t *testing.T) {
	ctx := context.Background()
	hotels, rooms := adjustmentsFixtures()
	c := app.NewRateAdjustmentsController(hotels, rooms)
	require.NoError(t, c.Load(ctx))

	hotels.roomTypes = nil // second hotel has no room types
	require.NoError(t, c.SelectHotel(ctx, 2))

	v := c.View()
	assert.Equal(t, int64(2), v.SelectedHotelID)
	assert.Zero(t, v.SelectedRoomTypeID)
	assert.Empty(t, v.RoomTypes)
	assert.Empty(t, v.Adjustments)
}

func TestRateAdjustments_SubmitWithoutSelection(t *testing.T) {
	c := app.NewRateAdjustmentsController(&fakeHotelAPI{}, &fakeRoomAPI{})
	require.NoError(t, c.Load(context.Background()))

	_, err := c.Submit(context.Background(), "5", "2025-07-01", "x")
	require.Error(t, err)
	assert.Equal(t, "Select a room type before submitting", c.View().FormError)
}

func TestRateAdjustments_SubmitRefetchesHistory(t *testing.T) {
	ctx := context.Background()
	hotels, rooms := adjustmentsFixtures()
	c := app.NewRateAdjustmentsController(hotels, rooms)
	require.NoError(t, c.Load(ctx))

	adj, err := c.Submit(ctx, "-7.25", "2025-08-01", "  renovation  ")
	require.NoError(t, err)
	assert.Equal(t, -7.25, adj.AdjustmentAmount)
	assert.Equal(t, "renovation", adj.Reason, "reason is trimmed")

	v := c.View()
	require.Len(t, v.Adjustments, 2, "history re-fetched after create")
	assert.Empty(t, v.FormError)
}

func TestRateAdjustments_SubmitValidation(t *testing.T) {
	ctx := context.Background()
	hotels, rooms := adjustmentsFixtures()
	c := app.NewRateAdjustmentsController(hotels, rooms)
	require.NoError(t, c.Load(ctx))

	_, err := c.Submit(ctx, "abc", "2025-08-01", "x")
	require.Error(t, err)
	assert.Contains(t, c.View().FormError, "adjustment amount")
	assert.Equal(t, 0, rooms.createdAdjCount)
}

func TestRateAdjustments_SubmitErrorDisplaysNormalizedDetail(t *testing.T) {
	ctx := context.Background()
	hotels, rooms := adjustmentsFixtures()
	rooms.createAdjErr = errors.New("boom")
	c := app.NewRateAdjustmentsController(hotels, rooms)
	require.NoError(t, c.Load(ctx))

	_, err := c.Submit(ctx, "5", "2025-08-01", "x")
	require.Error(t, err)
	assert.Equal(t, "Failed to create rate adjustment", c.View().FormError)
}

func TestRateAdjustments_PreviewComputesLocally(t *testing.T) {
	ctx := context.Background()
	hotels, rooms := adjustmentsFixtures()
	rooms.adjustments = []domain.RateAdjustment{
		{ID: 1, RoomTypeID: 10, AdjustmentAmount: 10, EffectiveDate: "2025-01-01"},
		{ID: 2, RoomTypeID: 10, AdjustmentAmount: -30, EffectiveDate: "2025-06-01"},
	}
	c := app.NewRateAdjustmentsController(hotels, rooms)
	require.NoError(t, c.Load(ctx))

	rate, ok := c.Preview("2025-03-01")
	require.True(t, ok)
	assert.Equal(t, 110.0, rate.EffectiveRate, "only the January adjustment applies in March")

	rate, ok = c.Preview("2025-07-01")
	require.True(t, ok)
	assert.Equal(t, 70.0, rate.EffectiveRate, "June adjustment supersedes")
}
