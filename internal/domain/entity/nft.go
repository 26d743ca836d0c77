package entity

import "strings"

const ipfsGateway = "https://ipfs.io/ipfs/"

var hiddenNFTTerms = []string{"reward", "claim", "rewards", "claimed"}

type NFTAttribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

type NFTMetadata struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Attributes  []NFTAttribute `json:"attributes,omitempty"`
}

type NFTTransfer struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Timestamp int64  `json:"timestamp"`
	Hash      string `json:"hash"`
	Value     string `json:"value,omitempty"`
}

type NFTSale struct {
	Price           float64 `json:"price"`
	PriceUSD        float64 `json:"priceUsd"`
	Timestamp       int64   `json:"timestamp"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	TransactionHash string  `json:"transactionHash"`
	Marketplace     string  `json:"marketplace"`
}

// NFT is a single non-fungible token. ContractAddress and TokenID together
// identify it.
type NFT struct {
	Type            string       `json:"type"`
	ContractAddress string       `json:"contractAddress"`
	TokenID         string       `json:"tokenId"`
	Name            string       `json:"name"`
	Symbol          string       `json:"symbol"`
	Owner           string       `json:"owner"`
	LastTransfer    *NFTTransfer `json:"lastTransfer,omitempty"`
	Metadata        *NFTMetadata `json:"metadata,omitempty"`
	FloorPrice      *float64     `json:"floorPrice,omitempty"`
	FloorPriceUSD   *float64     `json:"floorPriceUsd,omitempty"`
	Marketplace     string       `json:"marketplace,omitempty"`
	LastSale        *NFTSale     `json:"lastSale,omitempty"`
	OpenseaURL      string       `json:"openseaUrl,omitempty"`
}

// Key returns the composite identity of the NFT.
func (n NFT) Key() string {
	return strings.ToLower(n.ContractAddress) + ":" + n.TokenID
}

// ImageURL resolves the metadata image, rewriting ipfs:// links to the public gateway.
func (n NFT) ImageURL() string {
	if n.Metadata == nil || n.Metadata.Image == "" {
		return ""
	}
	if strings.HasPrefix(n.Metadata.Image, "ipfs://") {
		return ipfsGateway + strings.TrimPrefix(n.Metadata.Image, "ipfs://")
	}
	return n.Metadata.Image
}

// Displayable is false for airdrop bait collections (reward/claim names).
func (n NFT) Displayable() bool {
	name := strings.ToLower(n.Name)
	symbol := strings.ToLower(n.Symbol)
	for _, term := range hiddenNFTTerms {
		if strings.Contains(name, term) || strings.Contains(symbol, term) {
			return false
		}
	}
	return true
}

// ValuedUSD returns the USD floor value when both floor prices are known.
func (n NFT) ValuedUSD() (float64, bool) {
	if n.FloorPrice == nil || *n.FloorPrice == 0 || n.FloorPriceUSD == nil || *n.FloorPriceUSD == 0 {
		return 0, false
	}
	return *n.FloorPriceUSD, true
}
