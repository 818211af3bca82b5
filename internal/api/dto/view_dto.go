package dto

import (
	"github.com/spec-kit/unifin/internal/auth"
	"github.com/spec-kit/unifin/internal/domain"
)

// DecisionResponse is the route guard verdict for one view.
type DecisionResponse struct {
	View            string            `json:"view"`
	Allow           bool              `json:"allow"`
	Reason          domain.DenyReason `json:"reason,omitempty"`
	Message         string            `json:"message,omitempty"`
	RedirectTo      string            `json:"redirect_to,omitempty"`
	From            string            `json:"from,omitempty"`
	RedirectAfterMS int64             `json:"redirect_after_ms,omitempty"`
}

// NewDecisionResponse renders d.
func NewDecisionResponse(d auth.Decision) DecisionResponse {
	resp := DecisionResponse{View: d.View, Allow: d.Allow}
	if !d.Allow {
		resp.Reason = d.Reason
		resp.Message = d.Message
		resp.RedirectTo = d.RedirectTo
		resp.From = d.From
		resp.RedirectAfterMS = d.RedirectAfterMillis()
	}
	return resp
}
