package entity

// BannedToken is a token address the user excluded from aggregation.
type BannedToken struct {
	ID        int    `json:"id"`
	Address   string `json:"address"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"created_at,omitempty"`
}

// BannedTokenPage is the paginated response of GET /api/token-ban.
type BannedTokenPage struct {
	Tokens     []BannedToken `json:"tokens"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

// BanTokenRequest is the body sent to POST /api/token-ban.
type BanTokenRequest struct {
	Address string `json:"address" binding:"required"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Reason  string `json:"reason"`
}

// BannedTokenQuery selects a page of banned tokens. Zero values let the
// backend apply its defaults.
type BannedTokenQuery struct {
	Page   int
	Limit  int
	Search string
}
