package presenter

import (
	"encoding/json"

	"github.com/peergrouptools/peergroup-api/internal/adapter/dto/common"
	meetingDTO "github.com/peergrouptools/peergroup-api/internal/adapter/dto/meeting"
	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/usecase/meeting"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}

	response := &meetingDTO.MeetingResponse{
		ID:                  m.ID.String(),
		Title:               m.Title,
		Description:         m.Description,
		HumeLabel:           m.HumeLabel,
		HumeConfig:          m.HumeConfig,
		HumeSessionID:       m.HumeSessionID,
		HumeSessionRecordID: m.HumeSessionRecordID,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}

	// Include the summarized session if loaded
	if m.HumeSession != nil {
		response.HumeSession = ToHumeSessionResponse(m.HumeSession)
	}

	return response
}

// ToHumeSessionResponse converts a HumeSession entity to its DTO
func ToHumeSessionResponse(s *entities.HumeSession) *meetingDTO.HumeSessionResponse {
	if s == nil {
		return nil
	}
	data := json.RawMessage(s.Data)
	if len(data) == 0 {
		data = json.RawMessage(`{}`)
	}
	return &meetingDTO.HumeSessionResponse{
		ID:        s.ID,
		Data:      data,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToMeetingListResponse converts a page of meetings to MeetingListResponse
func ToMeetingListResponse(out *meeting.ListMeetingsOutput) *meetingDTO.MeetingListResponse {
	items := make([]*meetingDTO.MeetingSummaryItem, len(out.Meetings))
	for i, m := range out.Meetings {
		items[i] = &meetingDTO.MeetingSummaryItem{
			ID:          m.ID.String(),
			Title:       m.Title,
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		}
	}

	return &meetingDTO.MeetingListResponse{
		Data: items,
		Pagination: &common.PaginationResponse{
			Page:    out.Page,
			PerPage: out.PerPage,
			Total:   out.Total,
			Pages:   out.Pages,
		},
	}
}
