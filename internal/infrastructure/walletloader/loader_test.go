package walletloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	networkdefinition "portfolio_dashboard/internal/infrastructure/network/definition"
	"portfolio_dashboard/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walletFile = `# imported from the old tracker
ethereum 0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed Cold storage
SOLANA 7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV
ETHEREUM 0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED

BLAST 0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed
SOLANA 0xnot-solana
lonely
`

func TestLoad(t *testing.T) {
	l := NewWalletFileLoader(networkdefinition.NewChainRegistry(logger.NewNop()), logger.NewNop())

	wallets, skipped, err := l.Load(strings.NewReader(walletFile))
	require.NoError(t, err)

	require.Len(t, wallets, 2)
	assert.Equal(t, "ETHEREUM", wallets[0].Chain)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", wallets[0].Address)
	assert.Equal(t, "Cold storage", wallets[0].Name)
	assert.Equal(t, "SOLANA", wallets[1].Chain)
	assert.Empty(t, wallets[1].Name)

	lines := make([]int, 0, len(skipped))
	for _, s := range skipped {
		lines = append(lines, s.Line)
	}
	assert.Equal(t, []int{4, 6, 7, 8}, lines)
	assert.Equal(t, "duplicate wallet", skipped[0].Reason)
}

func TestLoadFile(t *testing.T) {
	l := NewWalletFileLoader(networkdefinition.NewChainRegistry(logger.NewNop()), logger.NewNop())

	_, _, err := l.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "wallets.txt")
	require.NoError(t, os.WriteFile(path, []byte(walletFile), 0o600))
	wallets, _, err := l.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, wallets, 2)
}
