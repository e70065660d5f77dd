package dto

type DraftRequest struct {
	Messages    []string `json:"messages" validate:"required,min=1"`
	UserName    string   `json:"user_name,omitempty"`
	UserContact string   `json:"user_contact,omitempty"`
	Send        bool     `json:"send,omitempty"`
}

type DraftResponse struct {
	Email      string   `json:"email"`
	Summary    string   `json:"summary"`
	Recipients []string `json:"recipients"`
	Topics     []string `json:"topics"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Sent       bool     `json:"sent"`
}
