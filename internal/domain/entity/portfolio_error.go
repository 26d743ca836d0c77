package entity

// WalletFetchError records a wallet whose balance could not be fetched.
// The wallet itself stays in the snapshot without a balance.
type WalletFetchError struct {
	WalletID    string `json:"walletId"`
	WalletName  string `json:"walletName"`
	Message     string `json:"message"`
	RateLimited bool   `json:"rateLimited,omitempty"`
}
