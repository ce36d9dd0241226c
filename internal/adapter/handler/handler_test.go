package handler

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
	"github.com/peergrouptools/peergroup-api/internal/infrastructure/external/oauth"
	"github.com/peergrouptools/peergroup-api/internal/infrastructure/http/middleware"
	"github.com/peergrouptools/peergroup-api/internal/usecase/chat"
	"github.com/peergrouptools/peergroup-api/internal/usecase/checkin"
	usecaseErrors "github.com/peergrouptools/peergroup-api/internal/usecase/errors"
	"github.com/peergrouptools/peergroup-api/internal/usecase/meeting"
	"github.com/peergrouptools/peergroup-api/internal/usecase/summary"
	"github.com/peergrouptools/peergroup-api/pkg/ai"
	"github.com/peergrouptools/peergroup-api/pkg/config"
	pkgvalidator "github.com/peergrouptools/peergroup-api/pkg/validator"
)

type stubSummary struct {
	out   *summary.SummarizeOutput
	err   error
	input summary.SummarizeInput
}

func (s *stubSummary) Summarize(_ context.Context, _ uuid.UUID, input summary.SummarizeInput) (*summary.SummarizeOutput, error) {
	s.input = input
	return s.out, s.err
}

type stubMeetings struct {
	meeting *entities.Meeting
	list    *meeting.ListMeetingsOutput
	err     error
	listIn  meeting.ListMeetingsInput
}

func (s *stubMeetings) CreateMeeting(_ context.Context, in meeting.CreateMeetingInput) (*entities.Meeting, error) {
	if s.err != nil {
		return nil, s.err
	}
	return entities.NewMeeting(in.UserID, in.Title, in.HumeLabel, in.HumeConfig), nil
}

func (s *stubMeetings) GetMeeting(context.Context, uuid.UUID, uuid.UUID) (*entities.Meeting, error) {
	return s.meeting, s.err
}

func (s *stubMeetings) ListMeetings(_ context.Context, in meeting.ListMeetingsInput) (*meeting.ListMeetingsOutput, error) {
	s.listIn = in
	return s.list, s.err
}

func (s *stubMeetings) DeleteMeeting(context.Context, uuid.UUID, uuid.UUID) error {
	return s.err
}

type stubCheckIns struct {
	in checkin.CreateInput
}

func (s *stubCheckIns) Create(_ context.Context, in checkin.CreateInput) (*entities.CheckIn, error) {
	s.in = in
	return &entities.CheckIn{ID: uuid.New(), UserID: in.UserID}, nil
}

type stubChats struct {
	delivery chat.Delivery
	outcome  *chat.Outcome
	err      error
}

func (s *stubChats) Ingest(_ context.Context, d chat.Delivery) (*chat.Outcome, error) {
	s.delivery = d
	return s.outcome, s.err
}

func (s *stubChats) Transcript(_ context.Context, chatID string) (*entities.ChatTranscript, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entities.ChatTranscript{ChatID: chatID, MessageCount: 2, Transcript: "USER: hi"}, nil
}

type stubTokens struct {
	err error
}

func (s *stubTokens) FetchToken(context.Context) (*oauth.HumeToken, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &oauth.HumeToken{AccessToken: "tok", TokenType: "Bearer", ExpiresIn: 1800}, nil
}

type stubAuth struct {
	user *entities.User
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*entities.User, error) {
	if token != "good" {
		return nil, usecaseErrors.ErrTokenInvalid
	}
	return s.user, nil
}

type fixture struct {
	e        *echo.Echo
	user     *entities.User
	summary  *stubSummary
	meetings *stubMeetings
	checkIns *stubCheckIns
	chats    *stubChats
	tokens   *stubTokens
}

func newFixture() *fixture {
	f := &fixture{
		e:        echo.New(),
		user:     entities.NewUser("user_1"),
		summary:  &stubSummary{},
		meetings: &stubMeetings{},
		checkIns: &stubCheckIns{},
		chats:    &stubChats{outcome: &chat.Outcome{Event: "chat_started", ChatID: "c1"}},
		tokens:   &stubTokens{},
	}
	f.e.Validator = pkgvalidator.New()
	f.e.HTTPErrorHandler = NewHTTPErrorHandler(nil)

	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(
		cfg,
		middleware.EchoAuth(&stubAuth{user: f.user}),
		NewSummaryHandler(f.summary, nil),
		NewMeetingHandler(f.meetings, nil),
		NewCheckInHandler(f.checkIns, nil),
		NewChatHandler(f.chats, nil),
		NewUserHandler(f.tokens, nil),
	).Setup(f.e)
	return f
}

func (f *fixture) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) authed(method, path, body string) *httptest.ResponseRecorder {
	return f.do(method, path, body, map[string]string{echo.HeaderAuthorization: "Bearer good"})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestWelcomeAndHealth(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to the PeerGroupToolsDemo API", decode(t, rec)["message"])

	rec = f.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestAuthRequired(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "UNAUTHENTICATED", body["code"])

	rec = f.do(http.MethodGet, "/v1/me", "", map[string]string{echo.HeaderAuthorization: "Bearer bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_INVALID_TOKEN", decode(t, rec)["code"])
}

func TestMe(t *testing.T) {
	f := newFixture()
	rec := f.authed(http.MethodGet, "/v1/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user_1", decode(t, rec)["clerk_id"])
}

func TestCreateHumeSession(t *testing.T) {
	f := newFixture()
	meetingID := uuid.New()
	f.summary.out = &summary.SummarizeOutput{
		Summary:       summary.Document(`{"overall_session_summary":"ok"}`),
		MeetingID:     meetingID,
		HumeSessionID: "ext-123",
	}

	payload := `{"meeting_id":"` + meetingID.String() + `","hume_session_id":"ext-123","transcript":[{"role":"user","text":"hi"}]}`
	rec := f.authed(http.MethodPost, "/v1/hume_sessions", payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ext-123", body["hume_session_id"])
	assert.Equal(t, meetingID.String(), body["meeting_id"])
	assert.Equal(t, "ok", body["summary"].(map[string]interface{})["overall_session_summary"])

	// the stored payload is the request body, byte for byte
	assert.Equal(t, payload, string(f.summary.input.Payload))
	assert.Equal(t, meetingID, f.summary.input.MeetingID)
}

func TestCreateHumeSessionErrors(t *testing.T) {
	meetingID := uuid.New().String()
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{"not json", `{`, nil, http.StatusBadRequest, "INVALID_PAYLOAD"},
		{"missing meeting", `{"transcript":[]}`, nil, http.StatusUnprocessableEntity, "VALIDATION"},
		{"meeting not found", `{"meeting_id":"` + meetingID + `"}`, entities.ErrMeetingNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"malformed", `{"meeting_id":"` + meetingID + `"}`, &summary.MalformedResponseError{RawText: "SECRET RAW"}, http.StatusUnprocessableEntity, "SUMMARY_MALFORMED"},
		{"unavailable", `{"meeting_id":"` + meetingID + `"}`, usecaseErrors.ErrSummaryUnavailable, http.StatusInternalServerError, "SUMMARY_UNAVAILABLE"},
		{"deadline", `{"meeting_id":"` + meetingID + `"}`, context.DeadlineExceeded, http.StatusInternalServerError, "SUMMARY_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.summary.err = tt.err
			rec := f.authed(http.MethodPost, "/v1/hume_sessions", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tt.code, body["code"])
			assert.NotContains(t, rec.Body.String(), "SECRET RAW")
		})
	}
}

func TestCreateMeeting(t *testing.T) {
	f := newFixture()

	rec := f.authed(http.MethodPost, "/v1/meetings", `{"meeting":{"title":"Weekly","hume_label":"l","hume_config":"c"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Weekly", body["meeting"].(map[string]interface{})["title"])

	rec = f.authed(http.MethodPost, "/v1/meetings", `{"meeting":{"hume_label":"l","hume_config":"c"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "title")

	f.meetings.err = entities.ErrInvalidTitle
	rec = f.authed(http.MethodPost, "/v1/meetings", `{"meeting":{"title":" ","hume_label":"l","hume_config":"c"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetMeeting(t *testing.T) {
	f := newFixture()
	m := entities.NewMeeting(f.user.ID, "Weekly", "l", "c")
	f.meetings.meeting = m

	rec := f.authed(http.MethodGet, "/v1/meetings/"+m.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, m.ID.String(), decode(t, rec)["id"])

	rec = f.authed(http.MethodGet, "/v1/meetings/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.meetings.err = entities.ErrForbidden
	rec = f.authed(http.MethodGet, "/v1/meetings/"+m.ID.String(), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.meetings.err = entities.ErrMeetingNotFound
	rec = f.authed(http.MethodGet, "/v1/meetings/"+m.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMeetings(t *testing.T) {
	f := newFixture()
	f.meetings.list = &meeting.ListMeetingsOutput{
		Meetings: []*entities.Meeting{entities.NewMeeting(f.user.ID, "A", "l", "c")},
		Page:     2, PerPage: 10, Total: 11, Pages: 2,
	}

	rec := f.authed(http.MethodGet, "/v1/meetings?q=wee&sort=title&direction=asc&page=2&per_page=10", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "wee", f.meetings.listIn.Search)
	assert.Equal(t, "title", f.meetings.listIn.SortBy)
	assert.Equal(t, f.user.ID, f.meetings.listIn.UserID)

	body := decode(t, rec)
	assert.Len(t, body["data"], 1)
	assert.Equal(t, float64(2), body["pagination"].(map[string]interface{})["pages"])

	rec = f.authed(http.MethodGet, "/v1/meetings?sort=password", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteMeeting(t *testing.T) {
	f := newFixture()
	id := uuid.New().String()

	rec := f.authed(http.MethodDelete, "/v1/meetings/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	f.meetings.err = entities.ErrForbidden
	rec = f.authed(http.MethodDelete, "/v1/meetings/"+id, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateCheckIn(t *testing.T) {
	f := newFixture()

	rec := f.authed(http.MethodPost, "/v1/check_ins", `{"chat_id":"c1","kind":"high","rating":4,"user_message":"good week"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, f.user.ID, f.checkIns.in.UserID)
	assert.Equal(t, 4, *f.checkIns.in.Rating)

	rec = f.authed(http.MethodPost, "/v1/check_ins", `{"kind":"medium"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, false, decode(t, rec)["ok"])
}

func TestHumeWebhook(t *testing.T) {
	f := newFixture()
	headers := map[string]string{
		ai.HumeTimestampHeader: "1760700000",
		ai.HumeSignatureHeader: "abc",
	}

	rec := f.do(http.MethodPost, "/v1/webhooks/hume", `{"event_name":"chat_started","chat_id":"c1"}`, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["ok"])
	assert.Equal(t, "1760700000", f.chats.delivery.Timestamp)
	assert.Equal(t, "abc", f.chats.delivery.Signature)
	assert.JSONEq(t, `{"event_name":"chat_started","chat_id":"c1"}`, string(f.chats.delivery.Body))

	f.chats.err = usecaseErrors.ErrInvalidSignature
	rec = f.do(http.MethodPost, "/v1/webhooks/hume", `{}`, headers)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "WEBHOOK_INVALID_SIGNATURE", decode(t, rec)["code"])

	f.chats.err = entities.ErrMissingChatID
	rec = f.do(http.MethodPost, "/v1/webhooks/hume", `{}`, headers)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTranscript(t *testing.T) {
	f := newFixture()

	rec := f.authed(http.MethodGet, "/v1/chats/c9/transcript", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c9", decode(t, rec)["chat_id"])

	f.chats.err = entities.ErrChatSessionNotFound
	rec = f.authed(http.MethodGet, "/v1/chats/c9/transcript", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateHumeToken(t *testing.T) {
	f := newFixture()

	rec := f.authed(http.MethodPost, "/v1/hume_tokens", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok", decode(t, rec)["access_token"])

	f.tokens.err = stdErrors.New("upstream said no")
	rec = f.authed(http.MethodPost, "/v1/hume_tokens", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "upstream said no")
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec)["code"])
}

func TestMapErrorConstraint(t *testing.T) {
	err := fmt.Errorf("failed to create meeting: %w", &repositories.ConstraintError{Constraint: "meetings_title_present"})
	appErr := MapError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode)
	assert.Equal(t, "meetings_title_present", appErr.Details["constraint"])

	detail := `new row for relation "check_ins" violates check constraint "check_ins_kind_check"`
	err = fmt.Errorf("failed to create check-in: %w", &repositories.ConstraintError{Constraint: "check_ins_kind_check", Detail: detail})
	appErr = MapError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode)
	assert.Equal(t, detail, appErr.Message)
	assert.Equal(t, "check_ins_kind_check", appErr.Details["constraint"])

	assert.Equal(t, http.StatusInternalServerError, MapError(stdErrors.New("boom")).HTTPCode)
}
