package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/internal/repository"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
)

func statusIn(status string, from []string) bool {
	for _, s := range from {
		if s == status {
			return true
		}
	}
	return false
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByStation(_ context.Context, stationID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.StationID == stationID {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock StationRepository ──

type mockStationRepo struct {
	stations map[string]*model.Station
}

func newMockStationRepo() *mockStationRepo {
	return &mockStationRepo{stations: make(map[string]*model.Station)}
}

func (m *mockStationRepo) GetByID(_ context.Context, id string) (*model.Station, error) {
	if s, ok := m.stations[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStationRepo) List(_ context.Context) ([]model.Station, error) {
	var result []model.Station
	for _, s := range m.stations {
		result = append(result, *s)
	}
	return result, nil
}

// ── Mock StationSettingsRepository ──

type mockStationSettingsRepo struct {
	settings map[string]*model.StationSettings
}

func newMockStationSettingsRepo() *mockStationSettingsRepo {
	return &mockStationSettingsRepo{settings: make(map[string]*model.StationSettings)}
}

func (m *mockStationSettingsRepo) Get(_ context.Context, stationID string) (*model.StationSettings, error) {
	if s, ok := m.settings[stationID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStationSettingsRepo) Upsert(_ context.Context, settings *model.StationSettings) error {
	m.settings[settings.StationID] = settings
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*model.Shift
	nextID int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		m.nextID++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.nextID)
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) ListByDate(_ context.Context, date time.Time, shiftType, stationID string) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if !s.Date.Equal(date) {
			continue
		}
		if shiftType != "" && s.Type != shiftType {
			continue
		}
		if stationID != "" && s.StationID != stationID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockShiftRepo) ListByMonth(_ context.Context, month, year int, stationID string) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if int(s.Date.Month()) != month || s.Date.Year() != year {
			continue
		}
		if stationID != "" && s.StationID != stationID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockShiftRepo) ReassignOwner(_ context.Context, shiftID string, newOwnerID *string) error {
	s, ok := m.shifts[shiftID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.UserID = newOwnerID
	return nil
}

func (m *mockShiftRepo) SetStatusIf(_ context.Context, shiftID string, from []string, to string) error {
	s, ok := m.shifts[shiftID]
	if !ok || !statusIn(s.Status, from) {
		return apperrors.ErrOptimisticLock
	}
	s.Status = to
	return nil
}

func (m *mockShiftRepo) ClaimIfUnfilled(_ context.Context, shiftID, ownerID string) error {
	s, ok := m.shifts[shiftID]
	if !ok || s.Status != model.ShiftStatusOpen || s.UserID != nil {
		return apperrors.ErrOptimisticLock
	}
	s.UserID = &ownerID
	s.Status = model.ShiftStatusPlanned
	return nil
}

// ── Mock ExchangeRequestRepository ──

type mockExchangeRepo struct {
	requests map[string]*model.ExchangeRequest
	nextID   int
}

func newMockExchangeRepo() *mockExchangeRepo {
	return &mockExchangeRepo{requests: make(map[string]*model.ExchangeRequest)}
}

func (m *mockExchangeRepo) Create(_ context.Context, req *model.ExchangeRequest) error {
	if req.ExchangeRequestID == "" {
		m.nextID++
		req.ExchangeRequestID = fmt.Sprintf("exch-%d", m.nextID)
	}
	m.requests[req.ExchangeRequestID] = req
	return nil
}

func (m *mockExchangeRepo) GetByID(_ context.Context, id string) (*model.ExchangeRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExchangeRepo) ListByParticipant(_ context.Context, userID string) ([]model.ExchangeRequest, error) {
	var result []model.ExchangeRequest
	for _, r := range m.requests {
		if r.RequesterID == userID || r.TargetUserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockExchangeRepo) ListPending(_ context.Context, stationID string) ([]model.ExchangeRequest, error) {
	var result []model.ExchangeRequest
	for _, r := range m.requests {
		if r.Status != model.ExchangeStatusPending {
			continue
		}
		if stationID != "" && r.StationID != stationID {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockExchangeRepo) ListAll(_ context.Context, _, _ int) ([]model.ExchangeRequest, int64, error) {
	var result []model.ExchangeRequest
	for _, r := range m.requests {
		result = append(result, *r)
	}
	return result, int64(len(result)), nil
}

func (m *mockExchangeRepo) UpdateStatusIf(_ context.Context, id string, from []string, to string) error {
	r, ok := m.requests[id]
	if !ok || !statusIn(r.Status, from) {
		return apperrors.ErrOptimisticLock
	}
	r.Status = to
	return nil
}

func (m *mockExchangeRepo) Finalize(_ context.Context, id string, from []string, to, approverID, adminNote string) error {
	r, ok := m.requests[id]
	if !ok || !statusIn(r.Status, from) {
		return apperrors.ErrOptimisticLock
	}
	r.Status = to
	r.ApprovedBy = &approverID
	r.AdminNote = adminNote
	return nil
}

// ── Mock OpenSwapRequestRepository ──

type mockOpenSwapRepo struct {
	requests map[string]*model.OpenSwapRequest
	nextID   int
}

func newMockOpenSwapRepo() *mockOpenSwapRepo {
	return &mockOpenSwapRepo{requests: make(map[string]*model.OpenSwapRequest)}
}

func (m *mockOpenSwapRepo) Create(_ context.Context, req *model.OpenSwapRequest) error {
	if req.OpenSwapRequestID == "" {
		m.nextID++
		req.OpenSwapRequestID = fmt.Sprintf("osr-%d", m.nextID)
	}
	m.requests[req.OpenSwapRequestID] = req
	return nil
}

func (m *mockOpenSwapRepo) GetByID(_ context.Context, id string) (*model.OpenSwapRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOpenSwapRepo) HasActiveForShift(_ context.Context, shiftID string) (bool, error) {
	for _, r := range m.requests {
		if r.ShiftID == shiftID && !r.Terminal() {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockOpenSwapRepo) ListOpen(_ context.Context, stationID string) ([]model.OpenSwapRequest, error) {
	var result []model.OpenSwapRequest
	for _, r := range m.requests {
		if r.Status != model.OpenSwapStatusOpen {
			continue
		}
		if stationID != "" && r.StationID != stationID {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockOpenSwapRepo) ListByRequester(_ context.Context, requesterID string) ([]model.OpenSwapRequest, error) {
	var result []model.OpenSwapRequest
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockOpenSwapRepo) ListPendingApproval(_ context.Context, stationID string) ([]model.OpenSwapRequest, error) {
	var result []model.OpenSwapRequest
	for _, r := range m.requests {
		if r.Status != model.OpenSwapStatusOfferSelected {
			continue
		}
		if stationID != "" && r.StationID != stationID {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockOpenSwapRepo) UpdateStatusIf(_ context.Context, id string, from []string, to string) error {
	r, ok := m.requests[id]
	if !ok || !statusIn(r.Status, from) {
		return apperrors.ErrOptimisticLock
	}
	r.Status = to
	if to != model.OpenSwapStatusOpen {
		r.IsOpen = false
	}
	return nil
}

func (m *mockOpenSwapRepo) Finalize(_ context.Context, id string, from []string, to, approverID, adminNote string) error {
	r, ok := m.requests[id]
	if !ok || !statusIn(r.Status, from) {
		return apperrors.ErrOptimisticLock
	}
	r.Status = to
	r.IsOpen = false
	r.ApprovedBy = &approverID
	r.AdminNote = adminNote
	return nil
}

// ── Mock SwapOfferRepository ──

type mockSwapOfferRepo struct {
	offers map[string]*model.SwapOffer
	nextID int
}

func newMockSwapOfferRepo() *mockSwapOfferRepo {
	return &mockSwapOfferRepo{offers: make(map[string]*model.SwapOffer)}
}

func (m *mockSwapOfferRepo) Create(_ context.Context, offer *model.SwapOffer) error {
	if offer.SwapOfferID == "" {
		m.nextID++
		offer.SwapOfferID = fmt.Sprintf("offer-%d", m.nextID)
	}
	m.offers[offer.SwapOfferID] = offer
	return nil
}

func (m *mockSwapOfferRepo) GetByID(_ context.Context, id string) (*model.SwapOffer, error) {
	if o, ok := m.offers[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSwapOfferRepo) ListByRequest(_ context.Context, requestID string) ([]model.SwapOffer, error) {
	var result []model.SwapOffer
	for _, o := range m.offers {
		if o.OpenSwapRequestID == requestID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockSwapOfferRepo) ListByOfferer(_ context.Context, offererID string) ([]model.SwapOffer, error) {
	var result []model.SwapOffer
	for _, o := range m.offers {
		if o.OffererID == offererID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockSwapOfferRepo) HasDuplicate(_ context.Context, requestID, offererID string, offererShiftID *string) (bool, error) {
	for _, o := range m.offers {
		if o.OpenSwapRequestID != requestID || o.OffererID != offererID || o.Status != model.OfferStatusPending {
			continue
		}
		if offererShiftID == nil && o.OffererShiftID == nil {
			return true, nil
		}
		if offererShiftID != nil && o.OffererShiftID != nil && *offererShiftID == *o.OffererShiftID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSwapOfferRepo) UpdateStatusIf(_ context.Context, id string, from []string, to string) error {
	o, ok := m.offers[id]
	if !ok || !statusIn(o.Status, from) {
		return apperrors.ErrOptimisticLock
	}
	o.Status = to
	return nil
}

func (m *mockSwapOfferRepo) RejectOtherPending(_ context.Context, requestID, exceptOfferID string) error {
	for _, o := range m.offers {
		if o.OpenSwapRequestID == requestID && o.SwapOfferID != exceptOfferID && o.Status == model.OfferStatusPending {
			o.Status = model.OfferStatusRejected
		}
	}
	return nil
}

func (m *mockSwapOfferRepo) WithdrawPendingByOfferer(_ context.Context, requestID, offererID, exceptOfferID string) error {
	for _, o := range m.offers {
		if o.OpenSwapRequestID == requestID && o.OffererID == offererID &&
			o.SwapOfferID != exceptOfferID && o.Status == model.OfferStatusPending {
			o.Status = model.OfferStatusWithdrawn
		}
	}
	return nil
}

func (m *mockSwapOfferRepo) GetAcceptedByRequest(_ context.Context, requestID string) (*model.SwapOffer, error) {
	for _, o := range m.offers {
		if o.OpenSwapRequestID == requestID && o.Status == model.OfferStatusAccepted {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ShiftBidRepository ──

type mockShiftBidRepo struct {
	bids   map[string]*model.ShiftBid
	nextID int
}

func newMockShiftBidRepo() *mockShiftBidRepo {
	return &mockShiftBidRepo{bids: make(map[string]*model.ShiftBid)}
}

func (m *mockShiftBidRepo) Create(_ context.Context, bid *model.ShiftBid) error {
	if bid.ShiftBidID == "" {
		m.nextID++
		bid.ShiftBidID = fmt.Sprintf("bid-%d", m.nextID)
	}
	m.bids[bid.ShiftBidID] = bid
	return nil
}

func (m *mockShiftBidRepo) GetByID(_ context.Context, id string) (*model.ShiftBid, error) {
	if b, ok := m.bids[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftBidRepo) ListByShift(_ context.Context, shiftID string) ([]model.ShiftBid, error) {
	var result []model.ShiftBid
	for _, b := range m.bids {
		if b.ShiftID == shiftID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockShiftBidRepo) ListByBidder(_ context.Context, bidderID string) ([]model.ShiftBid, error) {
	var result []model.ShiftBid
	for _, b := range m.bids {
		if b.BidderID == bidderID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockShiftBidRepo) HasPending(_ context.Context, shiftID, bidderID string) (bool, error) {
	for _, b := range m.bids {
		if b.ShiftID == shiftID && b.BidderID == bidderID && b.Status == model.BidStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockShiftBidRepo) UpdateStatusIf(_ context.Context, id string, from []string, to string) error {
	b, ok := m.bids[id]
	if !ok || !statusIn(b.Status, from) {
		return apperrors.ErrOptimisticLock
	}
	b.Status = to
	return nil
}

func (m *mockShiftBidRepo) RejectOtherPending(_ context.Context, shiftID, exceptBidID string) error {
	for _, b := range m.bids {
		if b.ShiftID == shiftID && b.ShiftBidID != exceptBidID && b.Status == model.BidStatusPending {
			b.Status = model.BidStatusRejected
		}
	}
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, notif *model.Notification) error {
	notif.NotificationID = fmt.Sprintf("notif-%d", len(m.notifications)+1)
	m.notifications = append(m.notifications, notif)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, _, _ int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	return result, int64(len(result)), nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	for _, n := range m.notifications {
		if n.NotificationID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// ── test environment ──

type testEnv struct {
	users       *mockUserRepo
	stations    *mockStationRepo
	settings    *mockStationSettingsRepo
	shifts      *mockShiftRepo
	exchanges   *mockExchangeRepo
	openSwaps   *mockOpenSwapRepo
	offers      *mockSwapOfferRepo
	bids        *mockShiftBidRepo
	notifs      *mockNotificationRepo
	repo        *repository.Repository
	exchange    *ExchangeService
	marketplace *MarketplaceService
	bid         *BidService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:     newMockUserRepo(),
		stations:  newMockStationRepo(),
		settings:  newMockStationSettingsRepo(),
		shifts:    newMockShiftRepo(),
		exchanges: newMockExchangeRepo(),
		openSwaps: newMockOpenSwapRepo(),
		offers:    newMockSwapOfferRepo(),
		bids:      newMockShiftBidRepo(),
		notifs:    newMockNotificationRepo(),
	}
	env.repo = &repository.Repository{
		User:            env.users,
		Station:         env.stations,
		StationSettings: env.settings,
		Shift:           env.shifts,
		ExchangeRequest: env.exchanges,
		OpenSwapRequest: env.openSwaps,
		SwapOffer:       env.offers,
		ShiftBid:        env.bids,
		Notification:    env.notifs,
	}

	logger := zap.NewNop()
	directory := NewDirectory(env.repo.User)
	approvals := NewApprovalGateway(directory)
	settings := NewSettingsService(env.repo, logger)
	notifier := NewNotifier(env.repo.Notification, nil, "test", logger)

	env.exchange = NewExchangeService(env.repo, directory, approvals, settings, notifier, logger)
	env.marketplace = NewMarketplaceService(env.repo, directory, approvals, settings, notifier, logger)
	env.bid = NewBidService(env.repo, approvals, settings, notifier, logger)
	return env
}

func (env *testEnv) addUser(id, role, stationID string, extra ...string) *model.User {
	u := &model.User{
		UserID:          id,
		Username:        id,
		FirstName:       "Test",
		LastName:        id,
		Role:            role,
		StationID:       stationID,
		ExtraStationIDs: extra,
	}
	env.users.users[id] = u
	return u
}

func (env *testEnv) addShift(id, ownerID, stationID, shiftType string, startIn time.Duration) *model.Shift {
	start := time.Now().Add(startIn)
	s := &model.Shift{
		ShiftID:   id,
		Date:      start.Truncate(24 * time.Hour),
		Type:      shiftType,
		StartTime: start,
		EndTime:   start.Add(12 * time.Hour),
		StationID: stationID,
		Status:    model.ShiftStatusPlanned,
	}
	if ownerID != "" {
		s.UserID = &ownerID
	} else {
		s.Status = model.ShiftStatusOpen
	}
	env.shifts.shifts[id] = s
	return s
}
