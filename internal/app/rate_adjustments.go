package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"hoteldesk/internal/adapters/backoffice"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/shared"
)

// RateAdjustmentsController owns the cross-hotel adjustments page: a hotel
// selector, the selected hotel's room types, and the selected room type's
// adjustment history, loaded as a dependent chain.
type RateAdjustmentsController struct {
	hotels domain.HotelAPI
	rooms  domain.RoomAPI

	mu           sync.Mutex
	hotelList    []domain.Hotel
	roomTypes    []domain.RoomType
	adjustments  []domain.RateAdjustment
	selHotel     int64
	selRoomType  int64
	pageErr      string
	formErr      string
	loadedHotels bool
	submitting   bool
}

type RateAdjustmentsView struct {
	Hotels             []domain.Hotel
	RoomTypes          []domain.RoomType
	Adjustments        []domain.RateAdjustment
	SelectedHotelID    int64
	SelectedRoomTypeID int64
	Loaded             bool
	Error              string
	FormError          string
	Empty              bool
}

func NewRateAdjustmentsController(hotels domain.HotelAPI, rooms domain.RoomAPI) *RateAdjustmentsController {
	return &RateAdjustmentsController{hotels: hotels, rooms: rooms}
}

// Load fetches the hotels and auto-selects the first one, cascading into its
// room types and their history.
func (c *RateAdjustmentsController) Load(ctx context.Context) error {
	hotels, err := c.hotels.ListHotels(ctx, domain.DefaultList())
	c.mu.Lock()
	c.loadedHotels = true
	if err != nil {
		c.pageErr = backoffice.Message(err, "Failed to load hotels")
		c.mu.Unlock()
		return err
	}
	c.hotelList = hotels
	c.pageErr = ""
	c.mu.Unlock()

	if len(hotels) > 0 {
		return c.SelectHotel(ctx, hotels[0].ID)
	}
	return nil
}

// SelectHotel loads the hotel's room types, clears dependent state, and
// auto-selects the first room type when there is one.
func (c *RateAdjustmentsController) SelectHotel(ctx context.Context, hotelID int64) error {
	c.mu.Lock()
	c.selHotel = hotelID
	c.selRoomType = 0
	c.roomTypes = nil
	c.adjustments = nil
	c.mu.Unlock()

	roomTypes, err := c.hotels.ListRoomTypes(ctx, hotelID)
	if err != nil {
		c.mu.Lock()
		c.pageErr = backoffice.Message(err, "Failed to load room types")
		c.mu.Unlock()
		return err
	}
	c.mu.Lock()
	c.roomTypes = roomTypes
	c.pageErr = ""
	c.mu.Unlock()

	if len(roomTypes) > 0 {
		return c.SelectRoomType(ctx, roomTypes[0].ID)
	}
	return nil
}

// SelectRoomType loads the adjustment history for the chosen room type.
func (c *RateAdjustmentsController) SelectRoomType(ctx context.Context, roomTypeID int64) error {
	c.mu.Lock()
	c.selRoomType = roomTypeID
	c.mu.Unlock()

	adjustments, err := c.rooms.ListAdjustments(ctx, roomTypeID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.pageErr = backoffice.Message(err, "Failed to load rate adjustments")
		return err
	}
	c.adjustments = adjustments
	c.pageErr = ""
	return nil
}

// Submit validates the adjustment form, creates the adjustment for the
// selected room type, and re-fetches the history so the list reflects the
// server's view.
func (c *RateAdjustmentsController) Submit(ctx context.Context, amountStr, date, reason string) (domain.RateAdjustment, error) {
	if err := c.beginSubmit(); err != nil {
		return domain.RateAdjustment{}, err
	}
	defer c.endSubmit()

	c.mu.Lock()
	roomTypeID := c.selRoomType
	c.mu.Unlock()
	if roomTypeID == 0 {
		return domain.RateAdjustment{}, c.fail(nil, "Select a room type before submitting")
	}

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
	c.mu.Unlock()

	// history re-fetch failures surface as the page error; the create itself
	// already succeeded
	_ = c.SelectRoomType(ctx, roomTypeID)
	return adj, nil
}

// Preview computes, from already-loaded history, what the selected room
// type's effective rate would be on the given date. Purely local; reports
// false when nothing is selected or the date is unparseable.
func (c *RateAdjustmentsController) Preview(date string) (domain.EffectiveRate, bool) {
	on, err := domain.ParseDate(date)
	if err != nil {
		on = time.Now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rt := range c.roomTypes {
		if rt.ID == c.selRoomType {
			return domain.EffectiveRateOn(rt, c.adjustments, on), true
		}
	}
	return domain.EffectiveRate{}, false
}

func (c *RateAdjustmentsController) View() RateAdjustmentsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return RateAdjustmentsView{
		Hotels:             append([]domain.Hotel(nil), c.hotelList...),
		RoomTypes:          append([]domain.RoomType(nil), c.roomTypes...),
		Adjustments:        append([]domain.RateAdjustment(nil), c.adjustments...),
		SelectedHotelID:    c.selHotel,
		SelectedRoomTypeID: c.selRoomType,
		Loaded:             c.loadedHotels,
		Error:              c.pageErr,
		FormError:          c.formErr,
		Empty:              c.loadedHotels && c.pageErr == "" && len(c.adjustments) == 0,
	}
}

func (c *RateAdjustmentsController) beginSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitInFlight
	}
	c.submitting = true
	return nil
}

func (c *RateAdjustmentsController) endSubmit() {
	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()
}

func (c *RateAdjustmentsController) fail(cause error, msg string) error {
	c.mu.Lock()
	c.formErr = backoffice.Message(cause, msg)
	c.mu.Unlock()
	if cause != nil {
		return cause
	}
	return errors.New(msg)
}
