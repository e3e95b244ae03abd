package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"hoteldesk/internal/adapters/backoffice"
	"hoteldesk/internal/domain"
)

// HotelListController owns the hotel overview page: the fetched list plus the
// reconciliation of create/update/delete results into it, with no full reload.
type HotelListController struct {
	api       domain.HotelAPI
	placement Placement

	mu         sync.Mutex
	hotels     []domain.Hotel
	loaded     bool
	loadErr    string
	formErr    string
	submitting bool
}

// HotelListView is an immutable snapshot for rendering. An empty list with no
// error is an explicit empty state, not a failure.
type HotelListView struct {
	Hotels    []domain.Hotel
	Loaded    bool
	Error     string
	FormError string
	Empty     bool
}

func NewHotelListController(api domain.HotelAPI) *HotelListController {
	// new hotels surface at the top of the overview
	return &HotelListController{api: api, placement: Prepend}
}

func (c *HotelListController) Load(ctx context.Context) error {
	hotels, err := c.api.ListHotels(ctx, domain.DefaultList())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = true
	if err != nil {
		c.loadErr = backoffice.Message(err, "Failed to load hotels")
		return err
	}
	c.loadErr = ""
	c.hotels = hotels
	return nil
}

func (c *HotelListController) View() HotelListView {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := HotelListView{
		Hotels:    append([]domain.Hotel(nil), c.hotels...),
		Loaded:    c.loaded,
		Error:     c.loadErr,
		FormError: c.formErr,
	}
	out.Empty = c.loaded && c.loadErr == "" && len(c.hotels) == 0
	return out
}

// Create validates the form, submits it, and places the server-assigned
// record into the local list per the page's placement policy.
func (c *HotelListController) Create(ctx context.Context, name, location string, active bool) (domain.Hotel, error) {
	if err := c.beginSubmit(); err != nil {
		return domain.Hotel{}, err
	}
	defer c.endSubmit()

	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" || location == "" {
		return domain.Hotel{}, c.fail(nil, "Name and location are required")
	}

	h, err := c.api.CreateHotel(ctx, domain.HotelCreate{Name: name, Location: location, IsActive: active})
	if err != nil {
		return domain.Hotel{}, c.fail(err, "Failed to create hotel")
	}

	c.mu.Lock()
	c.hotels = insert(c.hotels, h, c.placement)
	c.formErr = ""
	c.mu.Unlock()
	return h, nil
}

// Update replaces the record whose id matches the server-returned one; a
// missing id is a no-op since ids are immutable and the record may simply
// have been removed meanwhile.
func (c *HotelListController) Update(ctx context.Context, id int64, in domain.HotelUpdate) (domain.Hotel, error) {
	if err := c.beginSubmit(); err != nil {
		return domain.Hotel{}, err
	}
	defer c.endSubmit()

	h, err := c.api.UpdateHotel(ctx, id, in)
	if err != nil {
		return domain.Hotel{}, c.fail(err, "Failed to update hotel")
	}

	c.mu.Lock()
	for i := range c.hotels {
		if c.hotels[i].ID == h.ID {
			c.hotels[i] = h
			break
		}
	}
	c.formErr = ""
	c.mu.Unlock()
	return h, nil
}

// Delete requires an explicit confirmation before any request goes out; on
// success the record is filtered from the local list.
func (c *HotelListController) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := c.beginSubmit(); err != nil {
		return err
	}
	defer c.endSubmit()

	if _, err := c.api.DeleteHotel(ctx, id); err != nil {
		return c.fail(err, "Failed to delete hotel")
	}

	c.mu.Lock()
	kept := c.hotels[:0]
	for _, h := range c.hotels {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	c.hotels = kept
	c.formErr = ""
	c.mu.Unlock()
	return nil
}

func (c *HotelListController) beginSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitInFlight
	}
	c.submitting = true
	return nil
}

func (c *HotelListController) endSubmit() {
	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()
}

// fail records the inline display message and passes the cause through.
// A nil cause is a client-side validation failure that never hit the network.
func (c *HotelListController) fail(cause error, msg string) error {
	c.mu.Lock()
	c.formErr = backoffice.Message(cause, msg)
	c.mu.Unlock()
	if cause != nil {
		return cause
	}
	return errors.New(msg)
}
