package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/reflectlab/JournalPipe/internal/flow"
	"github.com/reflectlab/JournalPipe/internal/models"
	"github.com/reflectlab/JournalPipe/internal/store"
)

// envelope mirrors models.APIResponse with a raw result for per-test decoding.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func newTestServer(t *testing.T) (*Server, *store.InMemoryStore) {
	t.Helper()
	st := store.NewInMemoryStore()
	return NewServer(st, nil), st
}

func doRequest(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	var env envelope
	if len(rr.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: invalid response JSON: %v", method, path, err)
		}
	}
	return rr, env
}

func registerParticipant(t *testing.T, s *Server) string {
	t.Helper()
	rr, env := doRequest(t, s, http.MethodPost, "/v1/participants", "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, want 201", rr.Code)
	}
	var result map[string]string
	if err := json.Unmarshal(env.Result, &result); err != nil {
		t.Fatalf("register: invalid result: %v", err)
	}
	id := result["participant_id"]
	if id == "" {
		t.Fatal("register: empty participant id")
	}
	return id
}

func validAnswer(i int) string {
	return fmt.Sprintf("I noticed my thoughts kept drifting toward problem number %d during the afternoon today.", i)
}

func TestParticipantRegistration(t *testing.T) {
	s, _ := newTestServer(t)

	id := registerParticipant(t, s)
	if !strings.HasPrefix(id, "part_") {
		t.Errorf("participant id = %q, want part_ prefix", id)
	}

	rr, _ := doRequest(t, s, http.MethodGet, "/v1/participants", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/participants status = %d, want 405", rr.Code)
	}
}

func TestUnknownParticipant(t *testing.T) {
	s, _ := newTestServer(t)
	rr, env := doRequest(t, s, http.MethodGet, "/v1/participants/part_missing/progress", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
	if env.Status != string(models.APIStatusError) {
		t.Errorf("status field = %q, want error", env.Status)
	}
}

func TestStartSession(t *testing.T) {
	s, _ := newTestServer(t)
	id := registerParticipant(t, s)
	base := "/v1/participants/" + id

	rr, env := doRequest(t, s, http.MethodPost, base+"/session", `{"condition":"stress"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("start session status = %d, want 201", rr.Code)
	}
	var result sessionStartResult
	if err := json.Unmarshal(env.Result, &result); err != nil {
		t.Fatalf("invalid result: %v", err)
	}
	if len(result.Messages) != 3 {
		t.Errorf("opening transcript has %d messages, want welcome, intro and first question", len(result.Messages))
	}
	if result.Progress.TotalSteps != 28 || result.Progress.CurrentStep != 0 {
		t.Errorf("progress = %+v, want 0/28", result.Progress)
	}

	rr, _ = doRequest(t, s, http.MethodPost, base+"/session", `{"condition":"panic"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown condition status = %d, want 400", rr.Code)
	}
}

func TestSetPersonality(t *testing.T) {
	s, _ := newTestServer(t)
	id := registerParticipant(t, s)
	base := "/v1/participants/" + id

	rr, _ := doRequest(t, s, http.MethodPut, base+"/personality", `{"personality":"extraversion"}`)
	if rr.Code != http.StatusOK {
		t.Errorf("set personality status = %d, want 200", rr.Code)
	}

	rr, _ = doRequest(t, s, http.MethodPut, base+"/personality", `{"personality":"agreeableness"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown personality status = %d, want 400", rr.Code)
	}

	rr, _ = doRequest(t, s, http.MethodPost, base+"/personality", `{"personality":"neutral"}`)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST personality status = %d, want 405", rr.Code)
	}
}

func TestSubmitAnswer(t *testing.T) {
	s, _ := newTestServer(t)
	id := registerParticipant(t, s)
	base := "/v1/participants/" + id

	// No flow selected yet.
	rr, _ := doRequest(t, s, http.MethodPost, base+"/responses", `{"answer":"I felt very tense about everything today."}`)
	if rr.Code != http.StatusConflict {
		t.Errorf("answer before start status = %d, want 409", rr.Code)
	}

	doRequest(t, s, http.MethodPost, base+"/session", `{"condition":"stress"}`)

	rr, env := doRequest(t, s, http.MethodPost, base+"/responses", `{"answer":"`+validAnswer(1)+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("submit status = %d, want 200", rr.Code)
	}
	if env.Status != string(models.APIStatusOK) {
		t.Errorf("status field = %q, want ok", env.Status)
	}
	var turn flow.Turn
	if err := json.Unmarshal(env.Result, &turn); err != nil {
		t.Fatalf("invalid turn result: %v", err)
	}
	if !turn.Accepted || turn.NextQuestion == "" || turn.Feedback == "" {
		t.Errorf("turn = %+v, want accepted with feedback and next question", turn)
	}
	if turn.Progress.Answered != 1 {
		t.Errorf("Progress.Answered = %d, want 1", turn.Progress.Answered)
	}
}

func TestSubmitAnswer_Rejected(t *testing.T) {
	s, _ := newTestServer(t)
	id := registerParticipant(t, s)
	base := "/v1/participants/" + id
	doRequest(t, s, http.MethodPost, base+"/session", `{"condition":"anxiety"}`)

	rr, env := doRequest(t, s, http.MethodPost, base+"/responses", `{"answer":"ok"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("rejected answer status = %d, want 200", rr.Code)
	}
	if env.Status != string(models.APIStatusRejected) {
		t.Errorf("status field = %q, want rejected", env.Status)
	}
	if env.Message == "" {
		t.Error("rejection carries no reason")
	}
	var turn flow.Turn
	if err := json.Unmarshal(env.Result, &turn); err != nil {
		t.Fatalf("invalid turn result: %v", err)
	}
	if turn.Accepted || turn.Progress.Answered != 0 {
		t.Errorf("turn = %+v, want rejected with unchanged progress", turn)
	}
}

func TestFullSessionPersistsRecord(t *testing.T) {
	s, st := newTestServer(t)
	id := registerParticipant(t, s)
	base := "/v1/participants/" + id
	doRequest(t, s, http.MethodPost, base+"/session", `{"condition":"stress"}`)

	var last flow.Turn
	for i := 0; i < 28; i++ {
		rr, env := doRequest(t, s, http.MethodPost, base+"/responses", `{"answer":"`+validAnswer(i)+`"}`)
		if rr.Code != http.StatusOK || env.Status != string(models.APIStatusOK) {
			t.Fatalf("answer %d: status = %d/%s", i, rr.Code, env.Status)
		}
		if err := json.Unmarshal(env.Result, &last); err != nil {
			t.Fatalf("answer %d: invalid turn: %v", i, err)
		}
	}
	if !last.Completed {
		t.Fatal("final turn not marked completed")
	}

	records, err := st.ListSessions(context.Background(), id)
	if err != nil {
		t.Fatalf("ListSessions error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("persisted %d records, want 1", len(records))
	}
	rec := records[0]
	if !rec.Completed || rec.Condition != models.ConditionStress || len(rec.Answers) != 28 {
		t.Errorf("record = %+v, want completed stress session with 28 answers", rec)
	}
	if rec.Analytics.TotalResponses != 28 {
		t.Errorf("Analytics.TotalResponses = %d, want 28", rec.Analytics.TotalResponses)
	}

	// A completed flow refuses further answers.
	rr, _ := doRequest(t, s, http.MethodPost, base+"/responses", `{"answer":"`+validAnswer(99)+`"}`)
	if rr.Code != http.StatusConflict {
		t.Errorf("answer after completion status = %d, want 409", rr.Code)
	}
}

func TestSwitchConditionPersistsPartialRecord(t *testing.T) {
	s, st := newTestServer(t)
	id := registerParticipant(t, s)
	base := "/v1/participants/" + id
	doRequest(t, s, http.MethodPost, base+"/session", `{"condition":"stress"}`)
	doRequest(t, s, http.MethodPost, base+"/responses", `{"answer":"`+validAnswer(0)+`"}`)

	rr, env := doRequest(t, s, http.MethodPost, base+"/session", `{"condition":"lowMood"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("switch status = %d, want 201", rr.Code)
	}
	var result sessionStartResult
	if err := json.Unmarshal(env.Result, &result); err != nil {
		t.Fatalf("invalid result: %v", err)
	}
	if result.Progress.TotalSteps != 29 || result.Progress.Answered != 0 {
		t.Errorf("progress after switch = %+v, want fresh 29-step flow", result.Progress)
	}

	records, err := st.ListSessions(context.Background(), id)
	if err != nil {
		t.Fatalf("ListSessions error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("persisted %d records, want 1 partial record", len(records))
	}
	if records[0].Completed || records[0].Condition != models.ConditionStress || len(records[0].Answers) != 1 {
		t.Errorf("record = %+v, want partial stress record", records[0])
	}
}

func TestResetSession(t *testing.T) {
	s, st := newTestServer(t)
	id := registerParticipant(t, s)
	base := "/v1/participants/" + id
	doRequest(t, s, http.MethodPost, base+"/session", `{"condition":"anxiety"}`)
	doRequest(t, s, http.MethodPost, base+"/responses", `{"answer":"`+validAnswer(0)+`"}`)

	rr, _ := doRequest(t, s, http.MethodDelete, base+"/session", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("reset status = %d, want 200", rr.Code)
	}

	rr, _ = doRequest(t, s, http.MethodGet, base+"/progress", "")
	if rr.Code != http.StatusConflict {
		t.Errorf("progress after reset status = %d, want 409", rr.Code)
	}

	records, err := st.ListSessions(context.Background(), id)
	if err != nil {
		t.Fatalf("ListSessions error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("persisted %d records on reset, want 1", len(records))
	}
}

func TestProgressAndTranscript(t *testing.T) {
	s, _ := newTestServer(t)
	id := registerParticipant(t, s)
	base := "/v1/participants/" + id

	rr, _ := doRequest(t, s, http.MethodGet, base+"/progress", "")
	if rr.Code != http.StatusConflict {
		t.Errorf("progress before start status = %d, want 409", rr.Code)
	}

	doRequest(t, s, http.MethodPost, base+"/session", `{"condition":"lowMood"}`)
	doRequest(t, s, http.MethodPost, base+"/responses", `{"answer":"`+validAnswer(0)+`"}`)

	rr, env := doRequest(t, s, http.MethodGet, base+"/progress", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("progress status = %d, want 200", rr.Code)
	}
	var progress models.Progress
	if err := json.Unmarshal(env.Result, &progress); err != nil {
		t.Fatalf("invalid progress: %v", err)
	}
	if progress.Answered != 1 || progress.TotalSteps != 29 {
		t.Errorf("progress = %+v, want 1 of 29", progress)
	}

	rr, env = doRequest(t, s, http.MethodGet, base+"/transcript", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("transcript status = %d, want 200", rr.Code)
	}
	var transcript []models.Message
	if err := json.Unmarshal(env.Result, &transcript); err != nil {
		t.Fatalf("invalid transcript: %v", err)
	}
	// Welcome, intro, first question, answer, feedback, next question.
	if len(transcript) != 6 {
		t.Errorf("transcript has %d messages, want 6", len(transcript))
	}
	if transcript[3].Speaker != models.SpeakerUser {
		t.Errorf("transcript[3].Speaker = %q, want user", transcript[3].Speaker)
	}
}

func TestJournalEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	id := registerParticipant(t, s)
	base := "/v1/participants/" + id

	rr, _ := doRequest(t, s, http.MethodGet, base+"/journal", "")
	if rr.Code != http.StatusConflict {
		t.Errorf("journal before start status = %d, want 409", rr.Code)
	}

	doRequest(t, s, http.MethodPost, base+"/session", `{"condition":"stress"}`)
	doRequest(t, s, http.MethodPost, base+"/responses", `{"answer":"`+validAnswer(0)+`"}`)

	rr, env := doRequest(t, s, http.MethodGet, base+"/journal", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("journal status = %d, want 200", rr.Code)
	}
	var result journalResult
	if err := json.Unmarshal(env.Result, &result); err != nil {
		t.Fatalf("invalid journal result: %v", err)
	}
	if !strings.Contains(result.Markdown, "# Stress Management CBT Session") {
		t.Error("journal markdown missing title")
	}
	if !strings.HasPrefix(result.Filename, "cbt-journal-stress-neutral-") {
		t.Errorf("filename = %q, want cbt-journal-stress-neutral- prefix", result.Filename)
	}
	if result.Export.Metadata.ResponseCount != 1 {
		t.Errorf("export response count = %d, want 1", result.Export.Metadata.ResponseCount)
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	id := registerParticipant(t, s)
	base := "/v1/participants/" + id

	rr, _ := doRequest(t, s, http.MethodGet, base+"/analytics", "")
	if rr.Code != http.StatusConflict {
		t.Errorf("analytics before start status = %d, want 409", rr.Code)
	}

	doRequest(t, s, http.MethodPost, base+"/session", `{"condition":"stress"}`)
	doRequest(t, s, http.MethodPost, base+"/responses",
		`{"answer":"I feel tense about my balanced plan for tomorrow and want to manage it better."}`)

	rr, env := doRequest(t, s, http.MethodGet, base+"/analytics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("analytics status = %d, want 200", rr.Code)
	}
	var analytics models.SessionAnalytics
	if err := json.Unmarshal(env.Result, &analytics); err != nil {
		t.Fatalf("invalid analytics: %v", err)
	}
	if analytics.TotalResponses != 1 {
		t.Errorf("total responses = %d, want 1", analytics.TotalResponses)
	}
	// The single answer carries emotion and restructuring vocabulary,
	// so both outcomes read 100 percent of responses.
	if got := analytics.TherapeuticOutcomes["emotional_processing_depth"]; got != 100 {
		t.Errorf("emotional processing = %f, want 100", got)
	}
	if got := analytics.TherapeuticOutcomes["cognitive_restructuring_evidence"]; got != 100 {
		t.Errorf("cognitive restructuring = %f, want 100", got)
	}
	if len(analytics.ProgressIndicators) != 5 {
		t.Errorf("progress indicators = %d dimensions, want 5", len(analytics.ProgressIndicators))
	}
}

func TestSlowParticipantDoesNotBlockOthers(t *testing.T) {
	s, _ := newTestServer(t)
	slowID := registerParticipant(t, s)
	fastID := registerParticipant(t, s)

	started := make(chan struct{})
	release := make(chan struct{})
	blocking := func(ctx context.Context, p models.Personality, step *flow.Step, answer string, stepIndex int) (string, error) {
		close(started)
		<-release
		return "Noted.", nil
	}
	entry, ok := s.lookupParticipant(slowID)
	if !ok {
		t.Fatal("slow participant missing from registry")
	}
	entry.sess = flow.NewSession(slowID, flow.WithEngine(s.engine), flow.WithFeedbackFunc(blocking))

	slowBase := "/v1/participants/" + slowID
	fastBase := "/v1/participants/" + fastID
	doRequest(t, s, http.MethodPost, slowBase+"/session", `{"condition":"stress"}`)
	doRequest(t, s, http.MethodPost, fastBase+"/session", `{"condition":"anxiety"}`)

	post := func(path, body string, done chan struct{}) {
		defer close(done)
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)
	}

	slowDone := make(chan struct{})
	go post(slowBase+"/responses", `{"answer":"`+validAnswer(1)+`"}`, slowDone)
	<-started

	// The first participant's turn is parked in feedback generation.
	// A second participant's turn must still complete.
	fastDone := make(chan struct{})
	go post(fastBase+"/responses", `{"answer":"`+validAnswer(2)+`"}`, fastDone)
	select {
	case <-fastDone:
	case <-time.After(2 * time.Second):
		t.Error("second participant's request waited on the first participant's turn")
	}

	close(release)
	<-slowDone
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	registerParticipant(t, s)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rr.Code)
	}
	var health map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &health); err != nil {
		t.Fatalf("invalid health JSON: %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("health status = %v, want healthy", health["status"])
	}
	if health["active_participants"].(float64) != 1 {
		t.Errorf("active_participants = %v, want 1", health["active_participants"])
	}
}

func TestInvalidJSONBodies(t *testing.T) {
	s, _ := newTestServer(t)
	id := registerParticipant(t, s)
	base := "/v1/participants/" + id

	for _, path := range []string{"/session", "/personality", "/responses"} {
		method := http.MethodPost
		if path == "/personality" {
			method = http.MethodPut
		}
		rr, _ := doRequest(t, s, method, base+path, "{not json")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s %s with bad JSON status = %d, want 400", method, path, rr.Code)
		}
	}
}
