package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/birthdaywisher/wisher-server/internal/http/response"
	"github.com/birthdaywisher/wisher-server/internal/service"
)

// ContactRequest represents the request body for a contact-form submission.
type ContactRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// handleContact relays a contact-form submission to the operator.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	err := s.contactService.Submit(r.Context(), service.SubmitContactRequest{
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{"status": "sent"}, s.logger)
}
