package dto

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// ErrorResponse carries a single human-readable message.
type ErrorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ValidationErrorResponse carries the full per-field error set.
type ValidationErrorResponse struct {
	Message map[string][]string `json:"message"`
}

type ItemResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type ListData struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type ListResponse struct {
	Message string   `json:"message"`
	Data    ListData `json:"data"`
}

func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}
