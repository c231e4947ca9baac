// Package api provides HTTP handlers and the main API server logic for
// JournalPipe.
//
// It exposes RESTful endpoints for registering participants, running CBT
// reflection sessions, and exporting journals. Each participant owns one
// session; the server serializes that participant's requests, so the
// flow package's session values need no locking of their own.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/reflectlab/JournalPipe/internal/analysis"
	"github.com/reflectlab/JournalPipe/internal/flow"
	"github.com/reflectlab/JournalPipe/internal/genai"
	"github.com/reflectlab/JournalPipe/internal/models"
	"github.com/reflectlab/JournalPipe/internal/personality"
	"github.com/reflectlab/JournalPipe/internal/store"
	"github.com/reflectlab/JournalPipe/internal/util"
)

// DefaultAddr is the address the API server listens on when none is
// configured.
const DefaultAddr = ":8080"

// Opts holds configuration for the API server.
type Opts struct {
	// Addr is the listen address, host:port.
	Addr string
}

// Option configures the API server.
type Option func(*Opts)

// WithAddr overrides the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// participant pairs a session with the mutex serializing its requests.
// One slow turn, such as a pending feedback call, only ever blocks that
// participant's own requests.
type participant struct {
	mu   sync.Mutex
	sess *flow.Session
}

// Server owns the participant session registry and its collaborators.
// The registry mutex guards only the map itself.
type Server struct {
	mu           sync.Mutex
	participants map[string]*participant

	st       store.Store
	gaClient *genai.Client
	engine   *personality.Engine
	addr     string
}

// NewServer creates an API server. The store must be non-nil; the GenAI
// client may be nil, in which case feedback is composed locally.
func NewServer(st store.Store, gaClient *genai.Client, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	slog.Debug("Server.NewServer: creating API server", "addr", cfg.Addr, "genai_enabled", gaClient != nil)
	return &Server{
		participants: make(map[string]*participant),
		st:           st,
		gaClient:     gaClient,
		engine:       personality.NewEngine(),
		addr:         cfg.Addr,
	}
}

// Handler returns the routing handler for the API surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/participants", s.participantsHandler)
	mux.HandleFunc("/v1/participants/", s.participantHandler)
	mux.HandleFunc("/health", s.healthHandler)
	return mux
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	slog.Info("JournalPipe API running", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// newSession builds a session wired to the shared engine and, when a
// GenAI client is configured, to external feedback generation.
func (s *Server) newSession(participantID string) *flow.Session {
	opts := []flow.SessionOption{flow.WithEngine(s.engine)}
	if s.gaClient != nil {
		var sess *flow.Session
		feedback := func(ctx context.Context, p models.Personality, step *flow.Step, answer string, stepIndex int) (string, error) {
			return s.gaClient.GenerateFeedback(ctx, p, sess.Condition(), step.Prompt, answer, stepIndex)
		}
		opts = append(opts,
			flow.WithFeedbackFunc(feedback),
			flow.WithAnalyzeFunc(s.gaClient.AnalyzeText),
		)
		sess = flow.NewSession(participantID, opts...)
		return sess
	}
	return flow.NewSession(participantID, opts...)
}

// lookupParticipant fetches the registry entry for a participant id.
func (s *Server) lookupParticipant(participantID string) (*participant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[participantID]
	return p, ok
}

// persistSession writes a session record through the store. Storage
// problems are logged, never surfaced to the participant.
func (s *Server) persistSession(ctx context.Context, sess *flow.Session) {
	answers := sess.Answers()
	if len(answers) == 0 {
		return
	}
	recordID, err := util.GenerateSessionRecordID()
	if err != nil {
		slog.Error("Server.persistSession: failed to generate record ID", "error", err)
		return
	}
	rec := models.SessionRecord{
		ID:          recordID,
		Participant: sess.Participant(),
		Condition:   sess.Condition(),
		Personality: sess.Personality(),
		Answers:     answers,
		Analytics:   analysis.SessionAnalytics(answers),
		StartedAt:   sess.StartedAt(),
		FinishedAt:  time.Now(),
		Completed:   sess.Completed(),
	}
	if err := s.st.SaveSession(ctx, rec); err != nil {
		slog.Error("Server.persistSession: failed to save session record", "error", err, "participant", sess.Participant())
		return
	}
	slog.Info("Server.persistSession: session record saved", "id", recordID, "participant", sess.Participant(), "completed", rec.Completed)
}

// statusForError maps domain errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrUnknownCondition), errors.Is(err, models.ErrUnknownPersonality):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrSessionNotStarted), errors.Is(err, models.ErrSessionInProgress), errors.Is(err, models.ErrSessionComplete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// participantHandler routes /v1/participants/{id}/... requests.
func (s *Server) participantHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.participantHandler: routing request", "method", r.Method, "path", r.URL.Path)

	path := strings.TrimPrefix(r.URL.Path, "/v1/participants/")
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Missing participant ID"))
		return
	}
	participantID := segments[0]

	p, ok := s.lookupParticipant(participantID)
	if !ok {
		slog.Warn("Server.participantHandler: unknown participant", "participantID", participantID)
		writeJSONResponse(w, http.StatusNotFound, models.Error("Participant not found"))
		return
	}

	// Serialize this participant's requests; others stay unaffected.
	p.mu.Lock()
	defer p.mu.Unlock()
	sess := p.sess

	if len(segments) != 2 {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Unknown participant endpoint"))
		return
	}
	switch segments[1] {
	case "personality":
		s.personalityHandler(w, r, sess)
	case "session":
		s.sessionHandler(w, r, sess)
	case "responses":
		s.responsesHandler(w, r, sess)
	case "progress":
		s.progressHandler(w, r, sess)
	case "transcript":
		s.transcriptHandler(w, r, sess)
	case "analytics":
		s.analyticsHandler(w, r, sess)
	case "journal":
		s.journalHandler(w, r, sess)
	default:
		writeJSONResponse(w, http.StatusNotFound, models.Error("Unknown participant endpoint"))
	}
}

// healthHandler provides a health check endpoint for monitoring and load balancing
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	active := len(s.participants)
	s.mu.Unlock()

	healthData := map[string]interface{}{
		"status":              "healthy",
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
		"active_participants": active,
	}
	writeJSONResponse(w, http.StatusOK, healthData)
}
