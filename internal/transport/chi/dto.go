package chi

import (
	"time"

	domfaq "github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
	dompref "github.com/kailas-cloud/ipadhilfe/internal/domain/preferences"
	healthuc "github.com/kailas-cloud/ipadhilfe/internal/usecase/health"
)

// ErrorCode is a machine-readable error code.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest    ErrorCode = "bad_request"
	ErrorCodeNotFound      ErrorCode = "not_found"
	ErrorCodeInternalError ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FAQItem is the wire form of an item. The store's own identifiers never appear here.
type FAQItem struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryInfo is a category descriptor with its item count.
type CategoryInfo struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// HealthResponse is the health probe body.
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Preferences is the wire form of a preferences record.
type Preferences struct {
	UserID       string    `json:"user_id"`
	HasSeenIntro bool      `json:"has_seen_intro"`
	Favorites    []string  `json:"favorites"`
	Theme        string    `json:"theme"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PreferencesRequest is the PUT body. Absent fields take their defaults;
// user_id and updated_at are accepted but ignored.
type PreferencesRequest struct {
	UserID       *string    `json:"user_id,omitempty"`
	HasSeenIntro *bool      `json:"has_seen_intro,omitempty"`
	Favorites    []string   `json:"favorites,omitempty"`
	Theme        *string    `json:"theme,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// PutPreferencesResponse reports a preferences write.
type PutPreferencesResponse struct {
	Success  bool `json:"success"`
	Modified bool `json:"modified"`
}

func itemToDTO(it *domfaq.Item) FAQItem {
	return FAQItem{
		ID:        it.ID(),
		Question:  it.Question(),
		Answer:    it.Answer(),
		Category:  it.Category(),
		CreatedAt: it.CreatedAt(),
		UpdatedAt: it.UpdatedAt(),
	}
}

func itemsToDTO(items []domfaq.Item) []FAQItem {
	out := make([]FAQItem, len(items))
	for i := range items {
		out[i] = itemToDTO(&items[i])
	}
	return out
}

func categoryToDTO(c *domfaq.CategoryCount) CategoryInfo {
	return CategoryInfo{
		Name:        c.Name(),
		Icon:        c.Icon(),
		Description: c.Description(),
		Count:       c.Count(),
	}
}

func prefsToDTO(p *dompref.Preferences) Preferences {
	return Preferences{
		UserID:       p.UserID(),
		HasSeenIntro: p.HasSeenIntro(),
		Favorites:    p.Favorites(),
		Theme:        p.Theme(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func updateFromDTO(req *PreferencesRequest) dompref.Update {
	return dompref.Update{
		HasSeenIntro: req.HasSeenIntro,
		Favorites:    req.Favorites,
		Theme:        req.Theme,
		CreatedAt:    req.CreatedAt,
	}
}

func healthToDTO(r *healthuc.Report) HealthResponse {
	return HealthResponse{
		Status:    string(r.Status),
		Database:  r.Database,
		Error:     r.Error,
		Timestamp: r.Timestamp,
	}
}
