package handlers

import (
	"net/http"

	"pokedex-service/internal/chat"
	"pokedex-service/internal/domain"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply      *chat.Message  `json:"reply,omitempty"`
	Transcript []chat.Message `json:"transcript"`
	Error      string         `json:"error,omitempty"`
	Kind       string         `json:"kind,omitempty"`
	RequestID  string         `json:"requestId,omitempty"`
}

// ChatTranscript returns every message so far.
func (h *Handler) ChatTranscript(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, chatResponse{Transcript: h.chat.Transcript()}, h.logger)
}

// ChatSend relays a message. When the completion fails the substituted reply is in the
// transcript and the response carries the mapped status with the error kind.
func (h *Handler) ChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	reply, err := h.chat.Send(r.Context(), req.Message)
	if err != nil && domain.Kind(err) == "validation" {
		writeDomainError(w, r, err, h.logger)
		return
	}
	resp := chatResponse{Reply: &reply, Transcript: h.chat.Transcript()}
	status := http.StatusOK
	if err != nil {
		status, resp.Kind = statusFor(err)
		resp.Error = err.Error()
		resp.RequestID = requestID(r)
	}
	writeJSON(w, status, resp, h.logger)
}

// ChatReset clears the transcript back to the greeting.
func (h *Handler) ChatReset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, chatResponse{Transcript: h.chat.Reset()}, h.logger)
}
