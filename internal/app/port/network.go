package port

import "portfolio_dashboard/internal/domain/entity"

// ChainRegistry exposes the chains wallets can be registered on.
type ChainRegistry interface {
	// GetAllChains returns every known chain, enabled or not, in display order.
	GetAllChains() []entity.ChainDefinition

	// GetChain looks a chain up by identifier (case-insensitive).
	GetChain(identifier string) (entity.ChainDefinition, bool)

	// ValidateWalletAddress checks that the address is well formed for the chain.
	ValidateWalletAddress(identifier, address string) error
}
