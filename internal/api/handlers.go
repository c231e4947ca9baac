// Package api provides HTTP handlers for JournalPipe endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/reflectlab/JournalPipe/internal/analysis"
	"github.com/reflectlab/JournalPipe/internal/flow"
	"github.com/reflectlab/JournalPipe/internal/journal"
	"github.com/reflectlab/JournalPipe/internal/models"
	"github.com/reflectlab/JournalPipe/internal/util"
)

// participantsHandler handles participant registration (POST /v1/participants).
func (s *Server) participantsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.participantsHandler: processing request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.participantsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	participantID, err := util.GenerateParticipantID()
	if err != nil {
		slog.Error("Server.participantsHandler: failed to generate participant ID", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to generate participant ID"))
		return
	}

	s.mu.Lock()
	s.participants[participantID] = &participant{sess: s.newSession(participantID)}
	s.mu.Unlock()

	slog.Info("Server.participantsHandler: participant registered", "participantID", participantID)
	writeJSONResponse(w, http.StatusCreated, models.SuccessWithMessage("Participant registered successfully",
		map[string]string{"participant_id": participantID}))
}

// personalityHandler handles PUT /v1/participants/{id}/personality.
func (s *Server) personalityHandler(w http.ResponseWriter, r *http.Request, sess *flow.Session) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", http.MethodPut)
		slog.Warn("Server.personalityHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Personality models.Personality `json:"personality"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.personalityHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := sess.SetPersonality(req.Personality); err != nil {
		slog.Warn("Server.personalityHandler: personality change rejected", "error", err, "personality", req.Personality)
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}
	slog.Info("Server.personalityHandler: personality updated", "participantID", sess.Participant(), "personality", req.Personality)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Personality updated successfully",
		map[string]models.Personality{"personality": sess.Personality()}))
}

// sessionStartResult carries the opening bot messages of a fresh flow.
type sessionStartResult struct {
	Messages []models.Message `json:"messages"`
	Progress models.Progress  `json:"progress"`
}

// sessionHandler handles POST (start/switch) and DELETE (reset) on
// /v1/participants/{id}/session.
func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request, sess *flow.Session) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	switch r.Method {
	case http.MethodPost:
		s.startSession(w, r, sess)
	case http.MethodDelete:
		s.resetSession(w, r, sess)
	default:
		w.Header().Set("Allow", "POST, DELETE")
		slog.Warn("Server.sessionHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, sess *flow.Session) {
	var req struct {
		Condition models.Condition `json:"condition"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.startSession: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	var err error
	if sess.Condition() == "" {
		err = sess.StartCondition(req.Condition)
	} else {
		// Answers gathered so far belong to the outgoing flow; keep them.
		// Completed flows were already persisted on their final answer.
		if !sess.Completed() {
			s.persistSession(r.Context(), sess)
		}
		err = sess.SwitchCondition(req.Condition)
	}
	if err != nil {
		slog.Warn("Server.startSession: failed to start condition", "error", err, "condition", req.Condition)
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}

	progress, err := sess.GetProgress()
	if err != nil {
		slog.Error("Server.startSession: failed to read progress", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to read session progress"))
		return
	}
	slog.Info("Server.startSession: session started", "participantID", sess.Participant(), "condition", req.Condition)
	writeJSONResponse(w, http.StatusCreated, models.Success(sessionStartResult{
		Messages: sess.Transcript(),
		Progress: progress,
	}))
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request, sess *flow.Session) {
	if !sess.Completed() {
		s.persistSession(r.Context(), sess)
	}
	sess.Reset()
	slog.Info("Server.resetSession: session reset", "participantID", sess.Participant())
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Session reset successfully", nil))
}

// responsesHandler handles POST /v1/participants/{id}/responses.
func (s *Server) responsesHandler(w http.ResponseWriter, r *http.Request, sess *flow.Session) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.responsesHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.responsesHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	turn, err := sess.SubmitAnswer(r.Context(), req.Answer)
	if err != nil {
		slog.Warn("Server.responsesHandler: answer not accepted", "error", err, "participantID", sess.Participant())
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}

	// Rejections are guidance for the participant, not request errors.
	if !turn.Accepted {
		slog.Debug("Server.responsesHandler: answer rejected", "participantID", sess.Participant(), "reason", turn.Reason)
		writeRejection(w, turn.Reason, turn)
		return
	}

	if turn.Completed {
		s.persistSession(r.Context(), sess)
	}
	slog.Debug("Server.responsesHandler: answer accepted", "participantID", sess.Participant(), "completed", turn.Completed)
	writeJSONResponse(w, http.StatusOK, models.Success(turn))
}

// progressHandler handles GET /v1/participants/{id}/progress.
func (s *Server) progressHandler(w http.ResponseWriter, r *http.Request, sess *flow.Session) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.progressHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	progress, err := sess.GetProgress()
	if err != nil {
		slog.Warn("Server.progressHandler: no progress available", "error", err, "participantID", sess.Participant())
		writeJSONResponse(w, statusForError(err), models.Error(err.Error()))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(progress))
}

// transcriptHandler handles GET /v1/participants/{id}/transcript.
func (s *Server) transcriptHandler(w http.ResponseWriter, r *http.Request, sess *flow.Session) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.transcriptHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	transcript := sess.Transcript()
	slog.Debug("Server.transcriptHandler: transcript fetched", "participantID", sess.Participant(), "count", len(transcript))
	writeJSONResponse(w, http.StatusOK, models.Success(transcript))
}

// analyticsHandler handles GET /v1/participants/{id}/analytics.
func (s *Server) analyticsHandler(w http.ResponseWriter, r *http.Request, sess *flow.Session) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.analyticsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if sess.Condition() == "" {
		slog.Warn("Server.analyticsHandler: no session to analyze", "participantID", sess.Participant())
		writeJSONResponse(w, http.StatusConflict, models.Error(models.ErrSessionNotStarted.Error()))
		return
	}
	analytics := analysis.SessionAnalytics(sess.Answers())
	slog.Debug("Server.analyticsHandler: analytics computed", "participantID", sess.Participant(), "responses", analytics.TotalResponses)
	writeJSONResponse(w, http.StatusOK, models.Success(analytics))
}

// journalResult is the payload of a journal export.
type journalResult struct {
	Markdown string         `json:"markdown"`
	Filename string         `json:"filename"`
	Export   journal.Export `json:"export"`
}

// journalHandler handles GET /v1/participants/{id}/journal.
func (s *Server) journalHandler(w http.ResponseWriter, r *http.Request, sess *flow.Session) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.journalHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if sess.Condition() == "" {
		slog.Warn("Server.journalHandler: no session to summarize", "participantID", sess.Participant())
		writeJSONResponse(w, http.StatusConflict, models.Error(models.ErrSessionNotStarted.Error()))
		return
	}

	now := time.Now()
	markdown, err := journal.Render(sess.Condition(), sess.Personality(), sess.Answers(), now)
	if err != nil {
		slog.Error("Server.journalHandler: failed to render journal", "error", err, "participantID", sess.Participant())
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to render journal"))
		return
	}
	export, err := journal.ExportData(sess.Condition(), sess.Personality(), sess.Answers(), now)
	if err != nil {
		slog.Error("Server.journalHandler: failed to build export data", "error", err, "participantID", sess.Participant())
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to build export data"))
		return
	}

	slog.Info("Server.journalHandler: journal exported", "participantID", sess.Participant(), "filename", export.Metadata.Filename)
	writeJSONResponse(w, http.StatusOK, models.Success(journalResult{
		Markdown: markdown,
		Filename: journal.Filename(sess.Condition(), sess.Personality(), now),
		Export:   export,
	}))
}
