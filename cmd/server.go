package cmd

import (
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/hovertone/controller"
	"github.com/jsphweid/hovertone/model"
	"github.com/jsphweid/hovertone/synth"
	"github.com/jsphweid/hovertone/util"
	"github.com/rs/cors"
)

//go:embed static/index.html
var indexPage []byte

// server hosts one controller. Every request takes mu, so the controller
// sees events one at a time in arrival order.
type server struct {
	mu       sync.Mutex
	ctrl     *controller.Controller
	recorder *synth.Recorder
	logger   *slog.Logger

	recordDir string
	image     string

	session        string
	moves          int
	movesSinceRest int
	rest           func(f func())
}

type serverOptions struct {
	recorder     *synth.Recorder
	recordDir    string
	image        string
	restInterval time.Duration
}

func newServer(ctrl *controller.Controller, logger *slog.Logger, opts serverOptions) *server {
	return &server{
		ctrl:      ctrl,
		recorder:  opts.recorder,
		logger:    logger,
		recordDir: opts.recordDir,
		image:     opts.image,
		rest:      debounce.New(opts.restInterval),
	}
}

func (s *server) handler(origins []string) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/", s.handleIndex).Methods("GET")
	router.HandleFunc("/engage", s.handleEngage).Methods("POST")
	router.HandleFunc("/move", s.handleMove).Methods("POST")
	router.HandleFunc("/state", s.handleState).Methods("GET")
	router.HandleFunc("/image", s.handleImage).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (s *server) handleImage(w http.ResponseWriter, r *http.Request) {
	if s.image == "" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.image)
}

func (s *server) handleEngage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activated, err := s.ctrl.Engage()
	if err != nil {
		s.logger.Error("engage failed", "err", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	if activated {
		s.session = uuid.New().String()
		s.logger.Info("session started", "session", s.session)
	}
	writeJSON(w, http.StatusOK, model.EngageResponse{
		Engaged:   true,
		Activated: activated,
		Session:   s.session,
	})
}

func (s *server) handleMove(w http.ResponseWriter, r *http.Request) {
	var sample model.PointerSample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trig, err := s.ctrl.Move(sample)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, util.ErrDegenerateRange) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Error("move failed", "err", err)
		writeError(w, status, err)
		return
	}
	if trig.Played {
		s.moves++
		s.movesSinceRest++
		s.logger.Debug("chord", "index", trig.ChordIndex, "name", trig.ChordName,
			"reverb", trig.ReverbMix, "chorus", trig.ChorusDepth)
		s.rest(s.onRest)
	}
	writeJSON(w, http.StatusOK, trig)
}

func (s *server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, model.StateResponse{
		State:   s.ctrl.State().String(),
		Session: s.session,
		Moves:   s.moves,
	})
}

// onRest runs once the pointer has been still for the rest interval.
func (s *server) onRest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info("pointer at rest", "session", s.session, "chords", s.movesSinceRest, "total", s.moves)
	s.movesSinceRest = 0
	if err := s.flushRecording(); err != nil {
		s.logger.Error("could not save recording", "err", err)
	}
}

func (s *server) recordingPath() string {
	return filepath.Join(s.recordDir, s.session+".mid")
}

// flushRecording rewrites the session file with everything recorded so far.
// Callers hold mu.
func (s *server) flushRecording() error {
	if s.recorder == nil || s.recordDir == "" || s.session == "" {
		return nil
	}
	if err := util.EnsureDir(s.recordDir); err != nil {
		return err
	}
	path := s.recordingPath()
	if err := s.recorder.Save(path); err != nil {
		return err
	}
	s.logger.Info("recording saved", "path", path, "events", s.recorder.Len())
	return nil
}
