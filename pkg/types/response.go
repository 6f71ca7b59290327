package types

// Pagination describes the page window attached to list responses.
type Pagination struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	Pages    int   `json:"pages"`
	PageSize int   `json:"pageSize"`
}

// SuccessEnvelope is the wire shape for every successful response.
type SuccessEnvelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Token      string      `json:"token,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorEnvelope is the wire shape for every failed response.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}
