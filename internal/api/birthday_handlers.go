package api

import (
	"encoding/json/v2"
	"net/http"
	"time"

	"github.com/birthdaywisher/wisher-server/internal/http/response"
	"github.com/birthdaywisher/wisher-server/internal/service"
)

// AddBirthdayRequest represents the request body for creating a birthday
// record. The date arrives as a string and accepts either a bare calendar
// date (2006-01-02) or full RFC 3339.
type AddBirthdayRequest struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Theme   string `json:"theme"`
}

// PostGuestbookRequest represents the request body for posting a guestbook
// message.
type PostGuestbookRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// parseDate accepts a calendar date or a full timestamp.
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// handleGetBirthday returns a single record by name.
func (s *Server) handleGetBirthday(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		response.BadRequest(w, "Name is required", s.logger)
		return
	}

	birthday, err := s.birthdayService.GetByName(r.Context(), name)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, birthday, s.logger)
}

// handleAutocomplete returns name suggestions for a prefix.
func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	matches, err := s.birthdayService.Autocomplete(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, matches, s.logger)
}

// handleUpcoming returns today's and upcoming birthdays.
func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	ranked, err := s.birthdayService.Upcoming(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, ranked, s.logger)
}

// handleAddBirthday creates a new birthday record.
func (s *Server) handleAddBirthday(w http.ResponseWriter, r *http.Request) {
	var req AddBirthdayRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if req.Date == "" {
		response.BadRequest(w, "Date is required", s.logger)
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		response.BadRequest(w, "Date must be YYYY-MM-DD or RFC 3339", s.logger)
		return
	}

	birthday, err := s.birthdayService.Create(r.Context(), service.CreateBirthdayRequest{
		Name:    req.Name,
		Date:    date,
		Email:   req.Email,
		Message: req.Message,
		Theme:   req.Theme,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, birthday, s.logger)
}

// handleGetGuestbook returns the named record's guestbook.
func (s *Server) handleGetGuestbook(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		response.BadRequest(w, "Name is required", s.logger)
		return
	}

	entries, err := s.birthdayService.GetGuestbook(r.Context(), name)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, entries, s.logger)
}

// handlePostGuestbook appends a message to a record's guestbook and returns
// the full updated guestbook.
func (s *Server) handlePostGuestbook(w http.ResponseWriter, r *http.Request) {
	var req PostGuestbookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	updated, err := s.birthdayService.PostGuestbook(r.Context(), service.PostGuestbookRequest{
		Name: req.Name,
		Text: req.Text,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, updated.Guestbook, s.logger)
}
