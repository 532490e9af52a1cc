package adapter

// Usage captures normalized token usage.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CallReport captures the outcome of one dispatch attempt.
type CallReport struct {
	Adapter      string `json:"adapter"`
	Model        string `json:"model"`
	Usage        Usage  `json:"usage"`
	FallbackUsed bool   `json:"fallback_used"`
	Error        string `json:"error,omitempty"`
	Transient    bool   `json:"transient,omitempty"`
}
