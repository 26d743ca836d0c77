package entity

// Balance is the payload of GET /api/wallets/balance/{id}.
type Balance struct {
	Type              string            `json:"type"`
	Address           string            `json:"address"`
	LastUpdated       string            `json:"lastUpdated"`
	Balances          []TokenBalance    `json:"balances"`
	NFTs              []NFT             `json:"nfts,omitempty"`
	ContractAddresses map[string]string `json:"contractAddresses,omitempty"`
}
