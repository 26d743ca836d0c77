package networkdefinition

import (
	"fmt"
	"strings"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/utils"
)

// Predefined chain definitions, in the order the wallet form lists them.
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = evm("ETHEREUM", "Ethereum", "ETH", "https://etherscan.io")
	BSC      = evm("BSC", "BNB Smart Chain", "BNB", "https://bscscan.com")
	Polygon  = evm("POLYGON", "Polygon PoS", "POL", "https://polygonscan.com")
	Arbitrum = evm("ARBITRUM", "Arbitrum One", "ETH", "https://arbiscan.io")
	Optimism = evm("OPTIMISM", "OP Mainnet", "ETH", "https://optimistic.etherscan.io")
	Base     = evm("BASE", "Base", "ETH", "https://basescan.org")
	Linea    = evm("LINEA", "Linea", "ETH", "https://lineascan.build")
	// C-Chain only; X/P-chain addresses are not accepted.
	Avalanche  = evm("AVALANCHE", "Avalanche C-Chain", "AVAX", "https://snowtrace.io")
	Fantom     = evm("FANTOM", "Fantom Opera", "FTM", "https://ftmscan.com")
	Cronos     = evm("CRONOS", "Cronos", "CRO", "https://cronoscan.com")
	Gnosis     = evm("GNOSIS", "Gnosis Chain", "xDAI", "https://gnosisscan.io")
	Chiliz     = evm("CHILLIZ", "Chiliz Chain", "CHZ", "https://chiliscan.com")
	Moonbeam   = evm("MOONBEAM", "Moonbeam", "GLMR", "https://moonscan.io")
	Flow       = evm("FLOW", "Flow EVM", "FLOW", "https://evm.flowscan.io")
	Ronin      = evm("RONIN", "Ronin", "RON", "https://app.roninchain.com")
	Lisk       = evm("LISK", "Lisk", "ETH", "https://blockscout.lisk.com")
	PulseChain = evm("PULSECHAIN", "PulseChain", "PLS", "https://scan.pulsechain.com")
	Solana     = entity.ChainDefinition{
		Identifier:       "SOLANA",
		Name:             "Solana",
		NativeSymbol:     entity.SymbolSOL,
		Decimals:         9,
		Family:           entity.AddressFamilySolana,
		BlockExplorerURL: "https://solscan.io",
	}

	// Listed but not yet supported by the balance backend.
	Blast        = disabled(evm("BLAST", "Blast", "ETH", "https://blastscan.io"))
	ZkSync       = disabled(evm("ZKSYNC", "zkSync Era", "ETH", "https://explorer.zksync.io"))
	Mantle       = disabled(evm("MANTLE", "Mantle", "MNT", "https://mantlescan.xyz"))
	OpBNB        = disabled(evm("OPBNB", "opBNB", "BNB", "https://opbnbscan.com"))
	PolygonZkEVM = disabled(evm("POLYGON_ZKEVM", "Polygon zkEVM", "ETH", "https://zkevm.polygonscan.com"))
	ZetaChain    = disabled(evm("ZETACHAIN", "ZetaChain", "ZETA", "https://explorer.zetachain.com"))
)

var allKnownDefinitions = []entity.ChainDefinition{
	Ethereum, BSC, Polygon, Arbitrum, Optimism, Base, Linea, Avalanche, Fantom, Cronos,
	Gnosis, Chiliz, Moonbeam, Flow, Ronin, Lisk, PulseChain, Solana,
	Blast, ZkSync, Mantle, OpBNB, PolygonZkEVM, ZetaChain,
}

func evm(identifier, name, symbol, explorer string) entity.ChainDefinition {
	return entity.ChainDefinition{
		Identifier:       identifier,
		Name:             name,
		NativeSymbol:     symbol,
		Decimals:         18,
		Family:           entity.AddressFamilyEVM,
		BlockExplorerURL: explorer,
	}
}

func disabled(def entity.ChainDefinition) entity.ChainDefinition {
	def.Disabled = true
	return def
}

// ChainRegistryImpl implements port.ChainRegistry over the hardcoded definitions.
type ChainRegistryImpl struct {
	logger port.Logger
	chains []entity.ChainDefinition
	byID   map[string]entity.ChainDefinition
}

// NewChainRegistry creates the registry. Duplicate identifiers keep the first definition.
func NewChainRegistry(log port.Logger) port.ChainRegistry {
	r := &ChainRegistryImpl{
		logger: log,
		chains: make([]entity.ChainDefinition, 0, len(allKnownDefinitions)),
		byID:   make(map[string]entity.ChainDefinition, len(allKnownDefinitions)),
	}
	for _, def := range allKnownDefinitions {
		key := strings.ToUpper(def.Identifier)
		if _, dup := r.byID[key]; dup {
			r.logger.Warn("Duplicate chain definition, skipping", "identifier", def.Identifier)
			continue
		}
		r.byID[key] = def
		r.chains = append(r.chains, def)
	}
	enabled := 0
	for _, def := range r.chains {
		if !def.Disabled {
			enabled++
		}
	}
	r.logger.Debug("Chain registry initialized", "chains", len(r.chains), "enabled", enabled)
	return r
}

// GetAllChains returns a copy of every known chain.
func (r *ChainRegistryImpl) GetAllChains() []entity.ChainDefinition {
	out := make([]entity.ChainDefinition, len(r.chains))
	copy(out, r.chains)
	return out
}

func (r *ChainRegistryImpl) GetChain(identifier string) (entity.ChainDefinition, bool) {
	def, ok := r.byID[strings.ToUpper(strings.TrimSpace(identifier))]
	return def, ok
}

// ValidateWalletAddress rejects unknown or disabled chains and addresses that
// do not match the chain's encoding.
func (r *ChainRegistryImpl) ValidateWalletAddress(identifier, address string) error {
	def, ok := r.GetChain(identifier)
	if !ok {
		return fmt.Errorf("unknown chain %q", identifier)
	}
	if def.Disabled {
		return fmt.Errorf("chain %s is not supported yet", def.Name)
	}
	address = strings.TrimSpace(address)
	switch def.Family {
	case entity.AddressFamilySolana:
		if !utils.IsSolanaAddress(address) {
			return fmt.Errorf("invalid %s address %q", def.Name, address)
		}
	default:
		if !utils.IsEVMAddress(address) {
			return fmt.Errorf("invalid %s address %q", def.Name, address)
		}
	}
	return nil
}
