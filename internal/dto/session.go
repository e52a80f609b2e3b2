package dto

import "github.com/SscSPs/finops_backoffice/internal/core/domain"

// UpdateSessionRequest updates the caller's view state. Nil fields are left unchanged.
type UpdateSessionRequest struct {
	SearchQuery     *string `json:"searchQuery" binding:"omitempty,max=200"`
	SelectedOrderID *string `json:"selectedOrderID"`
}

// SessionResponse returns the caller's view state.
type SessionResponse struct {
	UserID          string                 `json:"userID"`
	SearchQuery     string                 `json:"searchQuery"`
	SelectedOrderID string                 `json:"selectedOrderID"`
	Staged          domain.StagedActions   `json:"staged"`
	Triggers        []TriggerStateResponse `json:"triggers"`
}

// ToSessionResponse converts a domain.Session to its DTO.
func ToSessionResponse(s domain.Session) SessionResponse {
	staged := s.Staged
	if staged == nil {
		staged = domain.StagedActions{}
	}
	return SessionResponse{
		UserID:          s.UserID,
		SearchQuery:     s.SearchQuery,
		SelectedOrderID: s.SelectedOrderID,
		Staged:          staged,
		Triggers:        ToTriggerStateResponses(s.Triggers),
	}
}

// TokenRequest asks for a development access token for an existing user.
type TokenRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"` // seconds
}
