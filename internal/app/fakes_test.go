package app_test

import (
	"context"
	"sync"

	"hoteldesk/internal/domain"
)

// ---- fakes ----

type fakeTokens struct {
	mu       sync.Mutex
	tok      string
	tokenErr error
}

func (f *fakeTokens) Token(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tok, f.tokenErr
}

func (f *fakeTokens) Save(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tok = token
	return nil
}

func (f *fakeTokens) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tok = ""
	return nil
}

type fakeAuth struct {
	token    domain.Token
	loginErr error
	lastUser string
}

func (f *fakeAuth) Login(ctx context.Context, creds domain.Credentials) (domain.Token, error) {
	f.lastUser = creds.Username
	if f.loginErr != nil {
		return domain.Token{}, f.loginErr
	}
	return f.token, nil
}

type fakeHotelAPI struct {
	mu        sync.Mutex
	hotels    []domain.Hotel
	hotel     domain.Hotel
	roomTypes []domain.RoomType
	nextID    int64

	listErr      error
	getErr       error
	createErr    error
	updateErr    error
	deleteErr    error
	roomTypesErr error

	createCalls int
	deleteCalls []int64

	// when set, CreateHotel signals entry and then blocks until released
	createStarted chan struct{}
	createRelease chan struct{}
}

func (f *fakeHotelAPI) ListHotels(ctx context.Context, opts domain.ListOptions) ([]domain.Hotel, error) {
	return f.hotels, f.listErr
}

func (f *fakeHotelAPI) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return f.hotel, f.getErr
}

func (f *fakeHotelAPI) CreateHotel(ctx context.Context, in domain.HotelCreate) (domain.Hotel, error) {
	if f.createStarted != nil {
		close(f.createStarted)
		f.createStarted = nil
	}
	if f.createRelease != nil {
		<-f.createRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return domain.Hotel{}, f.createErr
	}
	f.nextID++
	return domain.Hotel{ID: 100 + f.nextID, Name: in.Name, Location: in.Location, IsActive: in.IsActive}, nil
}

func (f *fakeHotelAPI) UpdateHotel(ctx context.Context, id int64, in domain.HotelUpdate) (domain.Hotel, error) {
	if f.updateErr != nil {
		return domain.Hotel{}, f.updateErr
	}
	h := domain.Hotel{ID: id, Name: "updated", Location: "updated", IsActive: true}
	if in.Name != nil {
		h.Name = *in.Name
	}
	if in.Location != nil {
		h.Location = *in.Location
	}
	if in.IsActive != nil {
		h.IsActive = *in.IsActive
	}
	return h, nil
}

func (f *fakeHotelAPI) DeleteHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, id)
	if f.deleteErr != nil {
		return domain.Hotel{}, f.deleteErr
	}
	return domain.Hotel{ID: id}, nil
}

func (f *fakeHotelAPI) ListRoomTypes(ctx context.Context, hotelID int64) ([]domain.RoomType, error) {
	return f.roomTypes, f.roomTypesErr
}

type fakeRoomAPI struct {
	mu          sync.Mutex
	adjustments []domain.RateAdjustment
	rates       map[int64]domain.EffectiveRate
	rateErrs    map[int64]error
	nextID      int64

	createRoomTypeErr error
	updateRoomTypeErr error
	deleteRoomTypeErr error
	createAdjErr      error
	listAdjErr        error

	rateDates       []string
	deletedIDs      []int64
	createdAdjCount int
}

func (f *fakeRoomAPI) CreateRoomType(ctx context.Context, in domain.RoomTypeCreate) (domain.RoomType, error) {
	if f.createRoomTypeErr != nil {
		return domain.RoomType{}, f.createRoomTypeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return domain.RoomType{ID: 200 + f.nextID, Name: in.Name, BaseRate: in.BaseRate, HotelID: in.HotelID}, nil
}

func (f *fakeRoomAPI) UpdateRoomType(ctx context.Context, id int64, in domain.RoomTypeUpdate) (domain.RoomType, error) {
	if f.updateRoomTypeErr != nil {
		return domain.RoomType{}, f.updateRoomTypeErr
	}
	rt := domain.RoomType{ID: id}
	if in.Name != nil {
		rt.Name = *in.Name
	}
	if in.BaseRate != nil {
		rt.BaseRate = *in.BaseRate
	}
	if in.HotelID != nil {
		rt.HotelID = *in.HotelID
	}
	return rt, nil
}

func (f *fakeRoomAPI) DeleteRoomType(ctx context.Context, id int64) (domain.RoomType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedIDs = append(f.deletedIDs, id)
	if f.deleteRoomTypeErr != nil {
		return domain.RoomType{}, f.deleteRoomTypeErr
	}
	return domain.RoomType{ID: id}, nil
}

func (f *fakeRoomAPI) CreateAdjustment(ctx context.Context, in domain.RateAdjustmentCreate) (domain.RateAdjustment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdAdjCount++
	if f.createAdjErr != nil {
		return domain.RateAdjustment{}, f.createAdjErr
	}
	f.nextID++
	adj := domain.RateAdjustment{
		ID:               300 + f.nextID,
		RoomTypeID:       in.RoomTypeID,
		AdjustmentAmount: in.AdjustmentAmount,
		EffectiveDate:    in.EffectiveDate,
		Reason:           in.Reason,
	}
	// the backend would include it in subsequent history reads
	f.adjustments = append(f.adjustments, adj)
	return adj, nil
}

func (f *fakeRoomAPI) ListAdjustments(ctx context.Context, roomTypeID int64) ([]domain.RateAdjustment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listAdjErr != nil {
		return nil, f.listAdjErr
	}
	var out []domain.RateAdjustment
	for _, a := range f.adjustments {
		if a.RoomTypeID == roomTypeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRoomAPI) GetEffectiveRate(ctx context.Context, roomTypeID int64, date string) (domain.EffectiveRate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rateDates = append(f.rateDates, date)
	if err, ok := f.rateErrs[roomTypeID]; ok {
		return domain.EffectiveRate{}, err
	}
	if r, ok := f.rates[roomTypeID]; ok {
		return r, nil
	}
	return domain.EffectiveRate{RoomTypeID: roomTypeID}, nil
}
