package entity

// AddressFamily tells how wallet addresses of a chain are encoded.
type AddressFamily string

const (
	AddressFamilyEVM    AddressFamily = "evm"
	AddressFamilySolana AddressFamily = "solana"
)

// ChainDefinition describes a chain wallets can be registered on.
type ChainDefinition struct {
	Identifier       string        `json:"identifier" yaml:"identifier"`
	Name             string        `json:"name" yaml:"name"`
	NativeSymbol     string        `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals         int32         `json:"decimals" yaml:"decimals"`
	Family           AddressFamily `json:"family" yaml:"family"`
	BlockExplorerURL string        `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
	Disabled         bool          `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}
