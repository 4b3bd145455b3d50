package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	musicbytes "github.com/cbegin/musicbytes-go"
)

const (
	DefaultScale        = "c-major"
	DefaultMaxBodyBytes = 32 << 20
)

type Option func(*Server)

// WithMaxBodyBytes limits the size of an uploaded source.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// WithWorkers sets the tone rendering concurrency for WAV responses.
func WithWorkers(n int) Option {
	return func(s *Server) {
		s.workers = n
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithAllowedOrigins restricts CORS origins. The default allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

type Server struct {
	maxBodyBytes int64
	workers      int
	logger       *log.Logger
	origins      []string
}

type errorResponse struct {
	Error string `json:"detail"`
}

func New(opts ...Option) *Server {
	s := &Server{
		maxBodyBytes: DefaultMaxBodyBytes,
		workers:      1,
		logger:       log.Default(),
		origins:      []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/sonify/{format:wav|json|arduino|midi}", s.handleSonify).Methods(http.MethodPost)
	router.HandleFunc("/scales", s.handleScales).Methods(http.MethodGet)
	router.Use(s.requestID)

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler(router)
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Printf("listening on %s", addr)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("%s %s %s (%s)", id, r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleScales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, musicbytes.ScaleNames())
}

func (s *Server) handleSonify(w http.ResponseWriter, r *http.Request) {
	scaleName := r.URL.Query().Get("scale")
	if scaleName == "" {
		scaleName = DefaultScale
	}
	mapper, err := musicbytes.ScaleMapper(scaleName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	m, err := musicbytes.DecodeReader(body, mapper)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("source larger than %d bytes", s.maxBodyBytes))
		case errors.Is(err, musicbytes.ErrFileTooSmall):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	switch mux.Vars(r)["format"] {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, musicbytes.JSONFrequencies(m))
	case "arduino":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, musicbytes.ArduinoSource(m))
	case "midi":
		w.Header().Set("Content-Type", "audio/midi")
		if err := musicbytes.WriteMIDI(w, m); err != nil {
			s.logger.Printf("write midi: %v", err)
		}
	case "wav":
		s.serveWAV(w, r, m)
	}
}

// serveWAV renders into a temporary file because the WAV encoder seeks back
// to patch chunk sizes.
func (s *Server) serveWAV(w http.ResponseWriter, r *http.Request, m *musicbytes.Melody) {
	samples, err := musicbytes.RenderSamples(r.Context(), m, musicbytes.WithWorkers(s.workers))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	f, err := os.CreateTemp("", "musicbytes-*.wav")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()
	if err := musicbytes.WriteWAV(f, samples); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	http.ServeContent(w, r, "audio.wav", time.Time{}, f)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
