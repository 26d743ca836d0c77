package entity

// Wallet is a user-registered wallet. Balance stays nil until it is fetched,
// and also when fetching it failed.
type Wallet struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Chain   string   `json:"type"`
	Balance *Balance `json:"balance,omitempty"`
}

// HasBalance reports whether balances were fetched for this wallet.
func (w Wallet) HasBalance() bool {
	return w.Balance != nil
}

// NewWalletRequest is the body sent to POST /api/wallets.
type NewWalletRequest struct {
	Address string `json:"address" binding:"required"`
	Chain   string `json:"chain" binding:"required"`
	Name    string `json:"name"`
}
