// internal/httpserver/server.go
//
// HTTP surface for the movie quiz.
// Responsibilities:
//   - Router + middleware (JSON, request IDs, panic recovery, timeouts, access log).
//   - Public endpoints: "/", "/health", "/debug/titles".
//   - Quiz endpoints: POST /quiz/new, POST /quiz/guess.
//   - History endpoint: GET /history (only when a database is configured).
//
// Notes:
//   - Sessions live in the in-memory store and are dropped once finished.
//   - A quiz.Session is not safe for concurrent use; every Apply happens
//     under Server.mu.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/moviequiz/internal/daily"
	"github.com/robalobadob/moviequiz/internal/history"
	"github.com/robalobadob/moviequiz/internal/quiz"
	"github.com/robalobadob/moviequiz/internal/store"
)

// Config holds server tunables.
type Config struct {
	Attempts  int    // default guesses per title when a request sets none
	DailySalt string // salt for daily.Seed
}

// Server bundles router, session store, titles and optional history.
type Server struct {
	r       *chi.Mux
	store   store.Store
	history *history.Store // nil when no database is configured
	titles  []string
	cfg     Config
	now     func() time.Time

	mu    sync.Mutex        // guards Apply on stored sessions and modes
	modes map[string]string // history mode per live session ID
}

// New constructs a Server, installs middleware, and registers routes.
// hist may be nil.
func New(st store.Store, hist *history.Store, titles []string, cfg Config) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		history: hist,
		titles:  titles,
		cfg:     cfg,
		now:     time.Now,
		modes:   make(map[string]string),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"moviequiz","endpoints":["/health","POST /quiz/new","POST /quiz/guess","/history"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/titles", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"titles": len(s.titles), "sessions": s.store.Len()})
	})

	s.r.Route("/quiz", func(r chi.Router) {
		r.Post("/new", s.handleNew)
		r.Post("/guess", s.handleGuess)
	})
	s.r.Get("/history", s.handleHistory)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog records method, path, status, bytes and duration per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Str("requestId", chimw.GetReqID(r.Context())).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- QUIZ --------------------------------------

// newReq/newRes payloads for POST /quiz/new.
type newReq struct {
	Shuffle  bool `json:"shuffle"`
	Daily    bool `json:"daily"`    // shared order and scrambles for the UTC day
	Attempts int  `json:"attempts"` // 0 uses the server default
}
type newRes struct {
	QuizID   string     `json:"quizId"`
	Round    int        `json:"round"`
	Total    int        `json:"total"`
	Attempts int        `json:"attempts"`
	Scramble string     `json:"scramble,omitempty"`
	State    quiz.State `json:"state"`
}

// handleNew starts a session over the server's titles.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	var req newReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Attempts < 0 {
		http.Error(w, `{"error":"invalid_attempts"}`, http.StatusBadRequest)
		return
	}
	attempts := req.Attempts
	if attempts == 0 {
		attempts = s.cfg.Attempts
	}

	var seed uint64
	shuffle := req.Shuffle
	if req.Daily {
		seed = daily.Seed(s.now(), s.cfg.DailySalt)
		shuffle = true
	}
	sess := quiz.NewSession(s.titles, quiz.Options{Attempts: attempts, Shuffle: shuffle}, quiz.NewRand(seed))
	sess.Start()
	mode := history.ModeHTTP
	if req.Daily {
		mode = history.ModeDaily
	}

	res := newRes{
		QuizID:   sess.ID,
		Round:    sess.Round(),
		Total:    sess.Total(),
		Attempts: sess.Attempts(),
		Scramble: quiz.Display(sess.Scramble()),
		State:    sess.State(),
	}
	if sess.State() == quiz.StateFinished {
		s.record(r, sess, mode)
		_ = json.NewEncoder(w).Encode(res)
		return
	}
	s.mu.Lock()
	s.modes[sess.ID] = mode
	s.mu.Unlock()
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Debug().Str("quizId", sess.ID).Int("titles", sess.Total()).Bool("daily", req.Daily).Msg("quiz started")
	_ = json.NewEncoder(w).Encode(res)
}

// guessReq/guessRes payloads for POST /quiz/guess.
type guessReq struct {
	QuizID string `json:"quizId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Outcome  quiz.Outcome `json:"outcome"`
	Answer   string       `json:"answer,omitempty"`   // set when a round ends without a correct guess
	Scramble string       `json:"scramble,omitempty"` // current scramble after this guess
	Round    int          `json:"round"`
	Attempt  int          `json:"attempt"`
	Score    quiz.Score   `json:"score"`
	State    quiz.State   `json:"state"`
}

// handleGuess applies one input line to a stored session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.QuizID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	s.mu.Lock()
	result, err := sess.Apply(req.Guess)
	res := guessRes{
		Outcome:  result.Outcome,
		Answer:   result.Answer,
		Scramble: quiz.Display(sess.Scramble()),
		Round:    sess.Round(),
		Attempt:  result.Attempt,
		Score:    sess.Score(),
		State:    sess.State(),
	}
	mode := s.modes[sess.ID]
	if res.State == quiz.StateFinished {
		delete(s.modes, sess.ID)
	}
	s.mu.Unlock()

	if errors.Is(err, quiz.ErrFinished) {
		http.Error(w, `{"error":"finished"}`, http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	if res.State == quiz.StateFinished {
		res.Round = res.Score.Total
		if err := s.store.Delete(r.Context(), sess.ID); err != nil {
			log.Warn().Err(err).Str("quizId", sess.ID).Msg("delete session")
		}
		s.record(r, sess, mode)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// record writes a finished session to history (best effort).
func (s *Server) record(r *http.Request, sess *quiz.Session, mode string) {
	if s.history == nil {
		return
	}
	if _, err := s.history.InsertResult(r.Context(), history.FromScore(mode, sess.Score(), false)); err != nil {
		log.Warn().Err(err).Str("quizId", sess.ID).Msg("record result")
	}
}

// ------------------------------ HISTORY ------------------------------------

type historyRes struct {
	Recent []history.Result `json:"recent"`
	Totals history.Totals   `json:"totals"`
}

// handleHistory returns recent results and lifetime totals.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, `{"error":"history_disabled"}`, http.StatusNotFound)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	recent, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("history recent")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	totals, err := s.history.Totals(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("history totals")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(historyRes{Recent: recent, Totals: totals})
}
