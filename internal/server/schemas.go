package server

// PredictRequest carries one message to classify.
type PredictRequest struct {
	Message string `json:"message"`
}

// PredictBatchRequest carries 1..100 messages to classify together.
type PredictBatchRequest struct {
	Messages []string `json:"messages"`
}

// InfoResponse is the root endpoint's API card.
type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
	Health  string `json:"health"`
}

// ReloadResponse reports the outcome of an explicit model reload.
type ReloadResponse struct {
	Status    string `json:"status"`
	ModelName string `json:"model_name,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
