package models

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// CounterTaskPayload is the queued retry of a provider session-count increment.
type CounterTaskPayload struct {
	ProviderID string `json:"providerId"`
	SessionID  string `json:"sessionId"` // booking that triggered the increment
}
