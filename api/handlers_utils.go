package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	rc "github.com/reithediver/lol-smurfguard-sub000/riot_common"
)

// sendJSONResponse is a common wrapper for JSON responses that sets Content-Type,
// Content-Length and ETag headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	// Marshal the data to calculate content length and ETag
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	s.sendRawJSON(w, responseBytes)
}

// sendRawJSON writes an already encoded JSON body
func (s *Server) sendRawJSON(w http.ResponseWriter, body []byte) {
	hash := md5.Sum(body)
	etag := hex.EncodeToString(hash[:])

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("ETag", "\""+etag+"\"")

	if _, err := w.Write(body); err != nil && s.logger != nil {
		s.logger.Warn("error writing response", zap.Error(err))
	}
}

// sendError maps upstream failures onto HTTP status codes
func (s *Server) sendError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError && s.logger != nil {
		s.logger.Warn("request failed", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, rc.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, rc.ErrUpstreamRateLimitExhausted):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return 499
	default:
		return http.StatusBadGateway
	}
}

// getIntParam parses a positive integer query parameter, falling back to def and capping at max
func getIntParam(r *http.Request, key string, def, max int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	if value > max {
		value = max
	}
	return value, nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Error("error shutting down server", zap.Error(err))
		}
	}
}
