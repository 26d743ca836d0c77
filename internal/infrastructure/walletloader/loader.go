// Package walletloader reads wallet import files for portfolioctl.
//
// One wallet per line: CHAIN ADDRESS [NAME...]. Blank lines and lines
// starting with # are skipped.
package walletloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/utils"
)

// SkippedLine is a line that could not be turned into a wallet.
type SkippedLine struct {
	Line   int
	Text   string
	Reason string
}

// WalletFileLoader parses wallet import files and validates every address
// against the chain registry.
type WalletFileLoader struct {
	chains port.ChainRegistry
	logger port.Logger
}

// NewWalletFileLoader creates a new WalletFileLoader.
func NewWalletFileLoader(chains port.ChainRegistry, logger port.Logger) *WalletFileLoader {
	return &WalletFileLoader{chains: chains, logger: logger}
}

// LoadFile reads wallets from path.
func (l *WalletFileLoader) LoadFile(path string) ([]entity.NewWalletRequest, []SkippedLine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open wallet file %s: %w", path, err)
	}
	defer file.Close()

	wallets, skipped, err := l.Load(file)
	if err != nil {
		return nil, nil, fmt.Errorf("error scanning wallet file %s: %w", path, err)
	}
	l.logger.Info("Wallets loaded from file", "count", len(wallets), "skipped", len(skipped), "path", path)
	return wallets, skipped, nil
}

// Load parses wallets from r. Duplicate chain/address pairs keep the first line.
func (l *WalletFileLoader) Load(r io.Reader) ([]entity.NewWalletRequest, []SkippedLine, error) {
	var (
		wallets []entity.NewWalletRequest
		skipped []SkippedLine
		seen    = make(map[string]struct{})
	)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		skip := func(reason string) {
			l.logger.Warn("Skipping wallet line", "line_number", lineNum, "reason", reason)
			skipped = append(skipped, SkippedLine{Line: lineNum, Text: line, Reason: reason})
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			skip("expected CHAIN ADDRESS [NAME]")
			continue
		}
		chain := strings.ToUpper(fields[0])
		address := fields[1]
		if err := l.chains.ValidateWalletAddress(chain, address); err != nil {
			skip(err.Error())
			continue
		}

		def, _ := l.chains.GetChain(chain)
		if def.Family == entity.AddressFamilyEVM {
			address = utils.ChecksumEVMAddress(address)
		}
		key := chain + "/" + address
		if _, dup := seen[key]; dup {
			skip("duplicate wallet")
			continue
		}
		seen[key] = struct{}{}

		wallets = append(wallets, entity.NewWalletRequest{
			Chain:   chain,
			Address: address,
			Name:    strings.Join(fields[2:], " "),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return wallets, skipped, nil
}
