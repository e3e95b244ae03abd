package domain

import "context"

type Credentials struct {
	Username string
	Password string
}

// Token is the backoffice login response; AccessToken is opaque to the client.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ListOptions carries the fixed skip/limit pagination pair for list endpoints.
type ListOptions struct {
	Skip  int
	Limit int
}

// DefaultList matches the backoffice defaults (skip=0, limit=100).
func DefaultList() ListOptions { return ListOptions{Skip: 0, Limit: 100} }

type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (Token, error)
}

type HotelAPI interface {
	ListHotels(ctx context.Context, opts ListOptions) ([]Hotel, error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	CreateHotel(ctx context.Context, in HotelCreate) (Hotel, error)
	UpdateHotel(ctx context.Context, id int64, in HotelUpdate) (Hotel, error)
	DeleteHotel(ctx context.Context, id int64) (Hotel, error)
	ListRoomTypes(ctx context.Context, hotelID int64) ([]RoomType, error)
}

type RoomAPI interface {
	CreateRoomType(ctx context.Context, in RoomTypeCreate) (RoomType, error)
	UpdateRoomType(ctx context.Context, id int64, in RoomTypeUpdate) (RoomType, error)
	DeleteRoomType(ctx context.Context, id int64) (RoomType, error)
	CreateAdjustment(ctx context.Context, in RateAdjustmentCreate) (RateAdjustment, error)
	ListAdjustments(ctx context.Context, roomTypeID int64) ([]RateAdjustment, error)
	// GetEffectiveRate queries the server-computed rate; an empty date means
	// the backend default ("today").
	GetEffectiveRate(ctx context.Context, roomTypeID int64, date string) (EffectiveRate, error)
}

// TokenStore persists the single opaque bearer token. An absent token is
// reported as ("", nil): unauthenticated, not an error.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
