// Package api serves SHA-512 digests over HTTP together with the padded
// message and per-character bit strings used for visualization.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	sha512 "github.com/Giulio2002/reference_sha512"
	"github.com/Giulio2002/reference_sha512/internal/utils"
	"github.com/floatdrop/lru"
	"github.com/klauspost/compress/gzhttp"
)

const logPrefix = "API"

// HashResponse is the body returned by POST /api/hash.
type HashResponse struct {
	Message    string        `json:"message"`
	Hash       sha512.Digest `json:"hash"`
	PaddedBits string        `json:"paddedBits"`
	Letters    []Letter      `json:"letters"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	cfg Config

	cacheLock sync.Mutex
	cache     *lru.LRU[string, []byte]
}

func NewServer(cfg Config) *Server {
	s := &Server{cfg: cfg}
	if cfg.CacheSize > 0 {
		s.cache = lru.New[string, []byte](cfg.CacheSize)
	}
	return s
}

// Handler returns the routed endpoint wrapped with CORS and gzip compression.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/hash", s.handleHash)
	return gzhttp.GzipHandler(withCORS(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		utils.Logf(logPrefix, "SHA-512 API listening on %s", s.cfg.Addr)
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
		utils.Noticef(logPrefix, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHash(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, (&InputError{Reason: "unreadable body", Err: err}).Error())
		return
	}

	message, err := decodeMessage(body)
	if err != nil {
		utils.Debugf(logPrefix, "rejected request from %s: %s", r.RemoteAddr, err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	buf, err := s.response(message)
	if err != nil {
		utils.Errorf(logPrefix, "encoding response: %s", err)
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	utils.Debugf(logPrefix, "hashed %d bytes for %s", len(message), r.RemoteAddr)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf)
}

// decodeMessage extracts the message from a request body of the form
// {"message": string}. An empty body or a missing message field hashes the
// empty string; any other message value, null included, is an InputError.
func decodeMessage(body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", nil
	}
	var req map[string]any
	if err := utils.UnmarshalJSON(body, &req); err != nil {
		return "", &InputError{Reason: "body must be a JSON object", Err: err}
	}
	v, ok := req["message"]
	if !ok {
		return "", nil
	}
	message, ok := v.(string)
	if !ok {
		return "", &InputError{Reason: fmt.Sprintf("message must be a JSON string, got %T", v)}
	}
	return message, nil
}

// response returns the encoded HashResponse for message, from cache when possible.
func (s *Server) response(message string) ([]byte, error) {
	cacheable := s.cache != nil && len(message) <= s.cfg.CacheMaxMessage
	if cacheable {
		s.cacheLock.Lock()
		cached := s.cache.Get(message)
		s.cacheLock.Unlock()
		if cached != nil {
			return *cached, nil
		}
	}

	buf, err := utils.MarshalJSON(NewHashResponse(message))
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.cacheLock.Lock()
		s.cache.Set(message, buf)
		s.cacheLock.Unlock()
	}
	return buf, nil
}

// NewHashResponse hashes the UTF-8 bytes of message and renders its padding.
func NewHashResponse(message string) HashResponse {
	msg := []byte(message)
	return HashResponse{
		Message:    message,
		Hash:       sha512.Sum512(msg),
		PaddedBits: BitString(sha512.PaddedBytes(msg)),
		Letters:    Letters(message),
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	buf, err := utils.MarshalJSON(errorResponse{Error: msg})
	if err != nil {
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}
