// Package dirsvc_mock provides a mock directory service for testing.
package dirsvc_mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"time"
)

// Server mimics the directory service attribute API.
type Server struct {
	server     *httptest.Server
	attributes map[string]any // key = subjectID|attrID
	asOf       time.Time
}

// NewServer creates and starts a new mock directory service.
func NewServer() *Server {
	s := &Server{
		attributes: make(map[string]any),
		asOf:       time.Now(),
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		re := regexp.MustCompile(`/api/subjects/([^/]+)/attributes/([^/]+)`)
		matches := re.FindStringSubmatch(r.URL.Path)
		if matches == nil || len(matches) != 3 {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		key := fmt.Sprintf("%s|%s", matches[1], matches[2])
		value, ok := s.attributes[key]
		if !ok {
			http.Error(w, "Attribute not found", http.StatusNotFound)
			return
		}

		response := map[string]any{"value": value, "as_of": s.asOf}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "JSON encoding error", http.StatusInternalServerError)
			return
		}
	})

	s.server = httptest.NewServer(handler)
	return s
}

// URL returns the URL of the mock server.
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts down the mock server.
func (s *Server) Close() {
	s.server.Close()
}

// SetAttribute sets the value returned for one subject/attribute pair.
func (s *Server) SetAttribute(subjectID, attrID string, value any) {
	key := fmt.Sprintf("%s|%s", subjectID, attrID)
	s.attributes[key] = value
}

// SetAsOf overrides the as-of timestamp reported with every attribute,
// letting tests exercise staleness handling.
func (s *Server) SetAsOf(asOf time.Time) {
	s.asOf = asOf
}
