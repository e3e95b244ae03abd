package backoffice

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"hoteldesk/internal/domain"
)

// Hotel operations: thin typed wrappers, one per backend action. Each returns
// the parsed response body or the transport error unchanged.

func (c *Client) ListHotels(ctx context.Context, opts domain.ListOptions) ([]domain.Hotel, error) {
	if opts.Limit <= 0 {
		opts = domain.DefaultList()
	}
	q := url.Values{}
	q.Set("skip", strconv.Itoa(opts.Skip))
	q.Set("limit", strconv.Itoa(opts.Limit))

	var out []domain.Hotel
	err := c.get(ctx, "hotels.list", "/hotels/", q, &out)
	return out, err
}

func (c *Client) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	var out domain.Hotel
	err := c.get(ctx, "hotels.get", fmt.Sprintf("/hotels/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateHotel(ctx context.Context, in domain.HotelCreate) (domain.Hotel, error) {
	var out domain.Hotel
	err := c.send(ctx, "hotels.create", http.MethodPost, "/hotels/", in, &out)
	return out, err
}

func (c *Client) UpdateHotel(ctx context.Context, id int64, in domain.HotelUpdate) (domain.Hotel, error) {
	var out domain.Hotel
	err := c.send(ctx, "hotels.update", http.MethodPut, fmt.Sprintf("/hotels/%d", id), in, &out)
	return out, err
}

// DeleteHotel returns the deleted record, mirroring the backend contract.
func (c *Client) DeleteHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	var out domain.Hotel
	err := c.send(ctx, "hotels.delete", http.MethodDelete, fmt.Sprintf("/hotels/%d", id), nil, &out)
	return out, err
}

func (c *Client) ListRoomTypes(ctx context.Context, hotelID int64) ([]domain.RoomType, error) {
	var out []domain.RoomType
	err := c.get(ctx, "hotels.room_types", fmt.Sprintf("/hotels/%d/room-types/", hotelID), nil, &out)
	return out, err
}
