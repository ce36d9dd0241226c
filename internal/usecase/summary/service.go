package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
	usecaseErrors "github.com/peergrouptools/peergroup-api/internal/usecase/errors"
)

// Service defines the interface for session summarization
type Service interface {
	// Summarize stores the payload as a session, summarizes it and links it to the meeting
	Summarize(ctx context.Context, userID uuid.UUID, input SummarizeInput) (*SummarizeOutput, error)
}

// Ensure SummaryService implements Service interface
var _ Service = (*SummaryService)(nil)

// Archiver keeps a copy of model output outside the database
type Archiver interface {
	Archive(ctx context.Context, key string, body []byte) error
}

// SummarizeInput is one summarization request
type SummarizeInput struct {
	MeetingID     uuid.UUID
	HumeSessionID string
	// Payload is the full inbound request body; it is stored verbatim
	Payload json.RawMessage
}

// SummarizeOutput is the committed result
type SummarizeOutput struct {
	Summary         Document
	MeetingID       uuid.UUID
	HumeSessionID   string
	SessionRecordID int64
	Model           string
	Tier            string
	SchemaValid     bool
}

// SummaryService runs the summary pipeline inside one transaction
type SummaryService struct {
	uow      repositories.UnitOfWork
	pipeline *Pipeline
	chats    repositories.ChatRepository
	archiver Archiver
	deadline time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewSummaryService creates a new summary service. chats and archiver may be nil.
func NewSummaryService(
	uow repositories.UnitOfWork,
	pipeline *Pipeline,
	chats repositories.ChatRepository,
	archiver Archiver,
	deadline time.Duration,
	logger *zap.Logger,
) *SummaryService {
	return &SummaryService{
		uow:      uow,
		pipeline: pipeline,
		chats:    chats,
		archiver: archiver,
		deadline: deadline,
		logger:   logger,
		now:      time.Now,
	}
}

// Summarize runs every write in a single transaction: when the pipeline fails
// the new session row is rolled back with everything else.
func (s *SummaryService) Summarize(ctx context.Context, userID uuid.UUID, input SummarizeInput) (*SummarizeOutput, error) {
	if s.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.deadline)
		defer cancel()
	}

	turns := ParseTurns(input.Payload)
	linkID := strings.TrimSpace(input.HumeSessionID)

	var out *SummarizeOutput
	err := s.uow.Do(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		meeting, err := repos.Meetings.FindByID(ctx, input.MeetingID)
		if err != nil {
			return err
		}
		if !meeting.IsOwnedBy(userID) {
			return entities.ErrMeetingNotFound
		}

		// an empty transcript is rebuilt from the ingested chat, once the meeting is known
		if len(turns) == 0 && linkID != "" && s.chats != nil {
			if turns, err = s.turnsFromChat(ctx, linkID); err != nil {
				return err
			}
		}

		session, err := entities.NewHumeSession(input.Payload)
		if err != nil {
			return fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, err)
		}
		if err := repos.HumeSessions.Create(ctx, session); err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		result, err := s.pipeline.Run(ctx, BuildPrompt(turns))
		if err != nil {
			return err
		}

		schemaErr := ValidateDocument(result.Document)
		if schemaErr != nil && s.logger != nil {
			s.logger.Warn("Summary does not match schema",
				zap.Int64("session_id", session.ID),
				zap.String("tier", result.Tier),
				zap.Error(schemaErr),
			)
		}

		if err := session.AttachSummary(json.RawMessage(result.Document), result.Model, result.Tier, schemaErr == nil, s.now()); err != nil {
			return err
		}
		if err := repos.HumeSessions.UpdateData(ctx, session); err != nil {
			return fmt.Errorf("failed to store summary: %w", err)
		}

		link := linkID
		if link == "" {
			link = strconv.FormatInt(session.ID, 10)
		}
		if err := repos.Meetings.LinkSession(ctx, meeting.ID, session.ID, link); err != nil {
			return fmt.Errorf("failed to link meeting: %w", err)
		}

		out = &SummarizeOutput{
			Summary:         result.Document,
			MeetingID:       meeting.ID,
			HumeSessionID:   link,
			SessionRecordID: session.ID,
			Model:           result.Model,
			Tier:            result.Tier,
			SchemaValid:     schemaErr == nil,
		}
		return nil
	})
	if err != nil {
		s.reportFailure(ctx, input.MeetingID, err)
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Session summarized",
			zap.String("meeting_id", out.MeetingID.String()),
			zap.String("hume_session_id", out.HumeSessionID),
			zap.Int64("session_id", out.SessionRecordID),
			zap.String("tier", out.Tier),
			zap.String("model", out.Model),
		)
	}
	s.archive(ctx, fmt.Sprintf("summaries/%s/%d.json", out.MeetingID, out.SessionRecordID), out.Summary)
	return out, nil
}

func (s *SummaryService) turnsFromChat(ctx context.Context, chatID string) ([]Turn, error) {
	messages, err := s.chats.ListMessages(ctx, chatID)
	if err != nil {
		if errors.Is(err, entities.ErrChatSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load chat messages: %w", err)
	}
	return TurnsFromMessages(messages), nil
}

func (s *SummaryService) reportFailure(ctx context.Context, meetingID uuid.UUID, err error) {
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		return
	}
	if s.logger != nil {
		s.logger.Error("Summary response is not valid JSON",
			zap.String("meeting_id", meetingID.String()),
			zap.Int("tiers", len(malformed.Tiers)),
			zap.String("raw", malformed.RawText),
		)
	}
	// the request context may already be past its deadline
	archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	s.archive(archiveCtx, fmt.Sprintf("malformed/%s/%d.txt", meetingID, s.now().UnixNano()), []byte(malformed.RawText))
}

func (s *SummaryService) archive(ctx context.Context, key string, body []byte) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Archive(ctx, key, body); err != nil && s.logger != nil {
		s.logger.Warn("Failed to archive summary output", zap.String("key", key), zap.Error(err))
	}
}
