package dto

type AskRequest struct {
	Query           string `json:"query" validate:"required"`
	SessionId       string `json:"session_id,omitempty"`
	PersonalityMode string `json:"personality_mode,omitempty"`
}

type UsedChunkDTO struct {
	ChunkID string   `json:"chunk_id"`
	Score   *float64 `json:"score"`
	Source  string   `json:"source"`
	Preview string   `json:"preview"`
}

type AskResponse struct {
	Answer           string         `json:"answer"`
	AgentType        string         `json:"agent_type"`
	Tokens           int            `json:"tokens,omitempty"`
	PromptTokens     int            `json:"prompt_tokens,omitempty"`
	CompletionTokens int            `json:"completion_tokens,omitempty"`
	UsedChunks       []UsedChunkDTO `json:"used_chunks,omitempty"`
	TopScore         *float64       `json:"top_score,omitempty"`
	WordCount        int            `json:"word_count"`
	LLMError         string         `json:"llm_error,omitempty"`
}

type PersonaDTO struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}
