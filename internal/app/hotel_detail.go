package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"hoteldesk/internal/adapters/backoffice"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/shared"
)

// HotelDetailController owns one hotel's detail page: the hotel record, its
// room types, and the per-room-type effective-rate and adjustment-history
// maps. Mutations reconcile into this state rather than reloading the page.
type HotelDetailController struct {
	hotels domain.HotelAPI
	rooms  domain.RoomAPI

	mu         sync.Mutex
	hotel      domain.Hotel
	roomTypes  []domain.RoomType
	rates      map[int64]domain.EffectiveRate
	history    map[int64][]domain.RateAdjustment
	loaded     bool
	loadErr    string
	formErr    string
	refreshErr string
	submitting bool
}

type HotelDetailView struct {
	Hotel     domain.Hotel
	RoomTypes []domain.RoomType
	Rates     map[int64]domain.EffectiveRate
	History   map[int64][]domain.RateAdjustment
	Loaded    bool
	Error     string
	FormError string
	// RefreshError reports a failed secondary refresh (effective rate or
	// history) after an otherwise successful mutation.
	RefreshError string
	Empty        bool
}

func NewHotelDetailController(hotels domain.HotelAPI, rooms domain.RoomAPI) *HotelDetailController {
	return &HotelDetailController{
		hotels:  hotels,
		rooms:   rooms,
		rates:   map[int64]domain.EffectiveRate{},
		history: map[int64][]domain.RateAdjustment{},
	}
}

// Load fetches the hotel and its room types concurrently and joins before the
// page renders, then fans out one effective-rate fetch per room type. A
// failed rate fetch leaves that entry absent without blocking the others.
func (c *HotelDetailController) Load(ctx context.Context, hotelID int64) error {
	var (
		hotel     domain.Hotel
		roomTypes []domain.RoomType
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hotel, err = c.hotels.GetHotel(gctx, hotelID)
		return err
	})
	g.Go(func() error {
		var err error
		roomTypes, err = c.hotels.ListRoomTypes(gctx, hotelID)
		return err
	})
	if err := g.Wait(); err != nil {
		c.mu.Lock()
		c.loaded = true
		c.loadErr = backoffice.Message(err, "Failed to load hotel details")
		c.mu.Unlock()
		return err
	}

	rates := make(map[int64]domain.EffectiveRate, len(roomTypes))
	var ratesMu sync.Mutex
	fan, fctx := errgroup.WithContext(ctx)
	for _, rt := range roomTypes {
		rt := rt
		fan.Go(func() error {
			rate, err := c.rooms.GetEffectiveRate(fctx, rt.ID, "")
			if err != nil {
				return nil // per-item isolation: skip, never block siblings
			}
			ratesMu.Lock()
			rates[rt.ID] = rate
			ratesMu.Unlock()
			return nil
		})
	}
	_ = fan.Wait()

	c.mu.Lock()
	c.hotel = hotel
	c.roomTypes = roomTypes
	c.rates = rates
	c.history = map[int64][]domain.RateAdjustment{}
	c.loaded = true
	c.loadErr = ""
	c.mu.Unlock()
	return nil
}

func (c *HotelDetailController) View() HotelDetailView {
	c.mu.Lock()
	defer c.mu.Unlock()

	rates := make(map[int64]domain.EffectiveRate, len(c.rates))
	for k, v := range c.rates {
		rates[k] = v
	}
	history := make(map[int64][]domain.RateAdjustment, len(c.history))
	for k, v := range c.history {
		history[k] = append([]domain.RateAdjustment(nil), v...)
	}
	return HotelDetailView{
		Hotel:        c.hotel,
		RoomTypes:    append([]domain.RoomType(nil), c.roomTypes...),
		Rates:        rates,
		History:      history,
		Loaded:       c.loaded,
		Error:        c.loadErr,
		FormError:    c.formErr,
		RefreshError: c.refreshErr,
		Empty:        c.loaded && c.loadErr == "" && len(c.roomTypes) == 0,
	}
}

// SaveRoomType creates (id == 0) or updates a room type from raw form input.
// The base rate is validated client-side before any network call; new room
// types append to the list, updates replace in place. A successful save also
// refreshes that room type's effective rate, best-effort.
func (c *HotelDetailController) SaveRoomType(ctx context.Context, id int64, name, rateStr string) (domain.RoomType, error) {
	if err := c.beginSubmit(); err != nil {
		return domain.RoomType{}, err
	}
	defer c.endSubmit()

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.RoomType{}, c.fail(nil, "Room type name is required")
	}
	baseRate, err := shared.ParsePositiveFloat(rateStr, "base rate")
	if err != nil {
		return domain.RoomType{}, c.fail(nil, err.Error())
	}

	c.mu.Lock()
	hotelID := c.hotel.ID
	c.mu.Unlock()

	var rt domain.RoomType
	if id == 0 {
		rt, err = c.rooms.CreateRoomType(ctx, domain.RoomTypeCreate{Name: name, BaseRate: baseRate, HotelID: hotelID})
	} else {
		rt, err = c.rooms.UpdateRoomType(ctx, id, domain.RoomTypeUpdate{Name: &name, BaseRate: &baseRate, HotelID: &hotelID})
	}
	if err != nil {
		return domain.RoomType{}, c.fail(err, "Failed to save room type")
	}

	c.mu.Lock()
	if id == 0 {
		c.roomTypes = insert(c.roomTypes, rt, Append)
	} else {
		for i := range c.roomTypes {
			if c.roomTypes[i].ID == rt.ID {
				c.roomTypes[i] = rt
				break
			}
		}
	}
	c.formErr = ""
	c.mu.Unlock()

	c.refreshRate(ctx, rt.ID, "")
	return rt, nil
}

// DeleteRoomType requires confirmation before issuing the request; on success
// the room type and its derived map entries are dropped from local state.
func (c *HotelDetailController) DeleteRoomType(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := c.beginSubmit(); err != nil {
		return err
	}
	defer c.endSubmit()

	if _, err := c.rooms.DeleteRoomType(ctx, id); err != nil {
		return c.fail(err, "Failed to delete room type")
	}

	c.mu.Lock()
	kept := c.roomTypes[:0]
	for _, rt := range c.roomTypes {
		if rt.ID != id {
			kept = append(kept, rt)
		}
	}
	c.roomTypes = kept
	delete(c.rates, id)
	delete(c.history, id)
	c.formErr = ""
	c.mu.Unlock()
	return nil
}

// SubmitAdjustment validates and creates a rate adjustment, then re-fetches
// the affected room type's effective rate (as of the adjustment's date) and
// its history. Refresh failures do not fail the create; they surface on the
// view as RefreshError.
func (c *HotelDetailController) SubmitAdjustment(ctx context.Context, roomTypeID int64, amountStr, date, reason string) (domain.RateAdjustment, error) {
	if err := c.beginSubmit(); err != nil {
		return domain.RateAdjustment{}, err
	}
	defer c.endSubmit()

	amount, err := shared.ParseFloat(amountStr, "adjustment amount")
	if err != nil {
		return domain.RateAdjustment{}, c.fail(nil, err.Error())
	}
	if _, err := domain.ParseDate(date); err != nil {
		return domain.RateAdjustment{}, c.fail(nil, "Please enter a valid effective date")
	}

	adj, err := c.rooms.CreateAdjustment(ctx, domain.RateAdjustmentCreate{
		RoomTypeID:       roomTypeID,
		AdjustmentAmount: amount,
		EffectiveDate:    date,
		Reason:           strings.TrimSpace(reason),
	})
	if err != nil {
		return domain.RateAdjustment{}, c.fail(err, "Failed to create rate adjustment")
	}

	c.mu.Lock()
	c.formErr = ""
	c.refreshErr = ""
	c.mu.Unlock()

	c.refreshRate(ctx, roomTypeID, date)
	if err := c.LoadHistory(ctx, roomTypeID); err != nil {
		c.mu.Lock()
		c.refreshErr = backoffice.Message(err, "Failed to refresh rate history")
		c.mu.Unlock()
	}
	return adj, nil
}

// LoadHistory fetches the adjustment history for one room type into the
// id-keyed map (history modal and post-create refresh).
func (c *HotelDetailController) LoadHistory(ctx context.Context, roomTypeID int64) error {
	adjustments, err := c.rooms.ListAdjustments(ctx, roomTypeID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.history[roomTypeID] = adjustments
	c.mu.Unlock()
	return nil
}

// refreshRate merges a fresh effective rate for one room type; failures only
// mark RefreshError, the triggering operation already succeeded.
func (c *HotelDetailController) refreshRate(ctx context.Context, roomTypeID int64, date string) {
	rate, err := c.rooms.GetEffectiveRate(ctx, roomTypeID, date)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.refreshErr = backoffice.Message(err, "Failed to refresh effective rate")
		return
	}
	c.rates[roomTypeID] = rate
}

func (c *HotelDetailController) beginSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitInFlight
	}
	c.submitting = true
	return nil
}

func (c *HotelDetailController) endSubmit() {
	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()
}

func (c *HotelDetailController) fail(cause error, msg string) error {
	c.mu.Lock()
	c.formErr = backoffice.Message(cause, msg)
	c.mu.Unlock()
	if cause != nil {
		return cause
	}
	return errors.New(msg)
}
