package backoffice

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"hoteldesk/internal/domain"
)

func (c *Client) CreateRoomType(ctx context.Context, in domain.RoomTypeCreate) (domain.RoomType, error) {
	var out domain.RoomType
	err := c.send(ctx, "room_types.create", http.MethodPost, "/room-types/", in, &out)
	return out, err
}

func (c *Client) UpdateRoomType(ctx context.Context, id int64, in domain.RoomTypeUpdate) (domain.RoomType, error) {
	var out domain.RoomType
	err := c.send(ctx, "room_types.update", http.MethodPut, fmt.Sprintf("/room-types/%d", id), in, &out)
	return out, err
}

func (c *Client) DeleteRoomType(ctx context.Context, id int64) (domain.RoomType, error) {
	var out domain.RoomType
	err := c.send(ctx, "room_types.delete", http.MethodDelete, fmt.Sprintf("/room-types/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateAdjustment(ctx context.Context, in domain.RateAdjustmentCreate) (domain.RateAdjustment, error) {
	var out domain.RateAdjustment
	err := c.send(ctx, "adjustments.create", http.MethodPost, "/rate-adjustments/", in, &out)
	return out, err
}

func (c *Client) ListAdjustments(ctx context.Context, roomTypeID int64) ([]domain.RateAdjustment, error) {
	var out []domain.RateAdjustment
	err := c.get(ctx, "adjustments.list", fmt.Sprintf("/room-types/%d/rate-adjustments/", roomTypeID), nil, &out)
	return out, err
}

// GetEffectiveRate asks the backend for the server-computed rate; an empty
// date leaves date_str off the query so the backend defaults to today.
func (c *Client) GetEffectiveRate(ctx context.Context, roomTypeID int64, date string) (domain.EffectiveRate, error) {
	var q url.Values
	if date != "" {
		q = url.Values{}
		q.Set("date_str", date)
	}
	var out domain.EffectiveRate
	err := c.get(ctx, "room_types.effective_rate", fmt.Sprintf("/room-types/%d/effective-rate", roomTypeID), q, &out)
	return out, err
}
