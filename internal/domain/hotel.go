package domain

// Hotel is a property record owned by the backoffice API. The client only
// holds write-through copies; IDs are assigned by the server and immutable.
type Hotel struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	IsActive bool   `json:"is_active"`
}

type HotelCreate struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	IsActive bool   `json:"is_active"`
}

// HotelUpdate is a partial update; nil fields are left untouched server-side.
type HotelUpdate struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type RoomType struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	BaseRate float64 `json:"base_rate"`
	HotelID  int64   `json:"hotel_id"`
}

type RoomTypeCreate struct {
	Name     string  `json:"name"`
	BaseRate float64 `json:"base_rate"`
	HotelID  int64   `json:"hotel_id"`
}

type RoomTypeUpdate struct {
	Name     *string  `json:"name,omitempty"`
	BaseRate *float64 `json:"base_rate,omitempty"`
	HotelID  *int64   `json:"hotel_id,omitempty"`
}
