package handler

import (
	"time"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/model"
)

// Model-to-DTO conversion. Dates render as 2006-01-02, timestamps as
// RFC3339, shift start/end as HH:MM.

func toUserBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:        u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		StationID: u.StationID,
	}
}

func toShiftResponse(s *model.Shift) *dto.ShiftResponse {
	if s == nil {
		return nil
	}
	return &dto.ShiftResponse{
		ID:           s.ShiftID,
		Date:         s.Date.Format("2006-01-02"),
		Type:         s.Type,
		StartTime:    s.StartTime.Format("15:04"),
		EndTime:      s.EndTime.Format("15:04"),
		IsSplitShift: s.IsSplitShift,
		Status:       s.Status,
		StationID:    s.StationID,
		User:         toUserBrief(s.User),
	}
}

func toShiftResponses(shifts []model.Shift) []dto.ShiftResponse {
	out := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		out = append(out, *toShiftResponse(&shifts[i]))
	}
	return out
}

func toExchangeResponse(r *model.ExchangeRequest) *dto.ExchangeRequestResponse {
	return &dto.ExchangeRequestResponse{
		ID:             r.ExchangeRequestID,
		Requester:      toUserBrief(r.Requester),
		RequesterShift: toShiftResponse(r.RequesterShift),
		TargetUser:     toUserBrief(r.TargetUser),
		TargetShift:    toShiftResponse(r.TargetShift),
		StationID:      r.StationID,
		RequesterNote:  r.RequesterNote,
		AdminNote:      r.AdminNote,
		ApprovedBy:     r.ApprovedBy,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.Format(time.RFC3339),
	}
}

func toExchangeResponses(reqs []model.ExchangeRequest) []dto.ExchangeRequestResponse {
	out := make([]dto.ExchangeRequestResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, *toExchangeResponse(&reqs[i]))
	}
	return out
}

func toSwapOfferResponse(o *model.SwapOffer) *dto.SwapOfferResponse {
	return &dto.SwapOfferResponse{
		ID:           o.SwapOfferID,
		RequestID:    o.OpenSwapRequestID,
		Offerer:      toUserBrief(o.Offerer),
		OffererShift: toShiftResponse(o.OffererShift),
		Note:         o.Note,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt.Format(time.RFC3339),
	}
}

func toSwapOfferResponses(offers []model.SwapOffer) []dto.SwapOfferResponse {
	out := make([]dto.SwapOfferResponse, 0, len(offers))
	for i := range offers {
		out = append(out, *toSwapOfferResponse(&offers[i]))
	}
	return out
}

func toOpenSwapResponse(r *model.OpenSwapRequest) *dto.OpenSwapResponse {
	return &dto.OpenSwapResponse{
		ID:            r.OpenSwapRequestID,
		Requester:     toUserBrief(r.Requester),
		Shift:         toShiftResponse(r.Shift),
		StationID:     r.StationID,
		RequesterNote: r.RequesterNote,
		AdminNote:     r.AdminNote,
		ApprovedBy:    r.ApprovedBy,
		Status:        r.Status,
		Offers:        toSwapOfferResponses(r.Offers),
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
}

func toOpenSwapResponses(reqs []model.OpenSwapRequest) []dto.OpenSwapResponse {
	out := make([]dto.OpenSwapResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, *toOpenSwapResponse(&reqs[i]))
	}
	return out
}

func toBidResponse(b *model.ShiftBid) *dto.BidResponse {
	return &dto.BidResponse{
		ID:        b.ShiftBidID,
		ShiftID:   b.ShiftID,
		Shift:     toShiftResponse(b.Shift),
		Bidder:    toUserBrief(b.Bidder),
		Status:    b.Status,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

func toBidResponses(bids []model.ShiftBid) []dto.BidResponse {
	out := make([]dto.BidResponse, 0, len(bids))
	for i := range bids {
		out = append(out, *toBidResponse(&bids[i]))
	}
	return out
}

func toNotificationResponses(notifs []model.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, 0, len(notifs))
	for i := range notifs {
		n := &notifs[i]
		out = append(out, dto.NotificationResponse{
			ID:          n.NotificationID,
			Type:        n.Type,
			Title:       n.Title,
			Content:     n.Content,
			IsRead:      n.IsRead,
			RelatedType: n.RelatedType,
			RelatedID:   n.RelatedID,
			CreatedAt:   n.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func toSettingsResponse(s *model.StationSettings) *dto.StationSettingsResponse {
	return &dto.StationSettingsResponse{
		StationID:        s.StationID,
		ShiftSwapEnabled: s.ShiftSwapEnabled,
		UpdatedAt:        s.UpdatedAt.Format(time.RFC3339),
	}
}
