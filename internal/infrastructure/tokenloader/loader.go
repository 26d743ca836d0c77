// Package tokenloader reads banned-token lists from JSON files so a list can
// be shared between accounts and imported with portfolioctl.
package tokenloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BanListLoader reads []entity.BanTokenRequest from a JSON file, or from every
// *.json file of a directory.
type BanListLoader struct {
	logger port.Logger
}

func NewBanListLoader(logger port.Logger) *BanListLoader {
	return &BanListLoader{logger: logger}
}

// Load reads path. Entries without an address are dropped, as are repeated
// addresses (compared case-insensitively). Unreadable files inside a
// directory are logged and skipped; an unreadable path is an error.
func (l *BanListLoader) Load(path string) ([]entity.BanTokenRequest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ban list %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read ban list directory %s: %w", path, err)
		}
		files = files[:0]
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
				continue
			}
			files = append(files, filepath.Join(path, e.Name()))
		}
		if len(files) == 0 {
			l.logger.Info("No JSON files found in ban list directory", "path", path)
		}
	}

	var (
		out  []entity.BanTokenRequest
		seen = utils.NewAddressSet()
	)
	for _, file := range files {
		entries, err := l.readFile(file)
		if err != nil {
			if !info.IsDir() {
				return nil, err
			}
			l.logger.Warn("Skipping unreadable ban list file", "path", file, "error", err)
			continue
		}

		kept := 0
		for _, e := range entries {
			e.Address = strings.TrimSpace(e.Address)
			if e.Address == "" {
				l.logger.Warn("Ban list entry without address, skipping", "path", file, "symbol", e.Symbol)
				continue
			}
			if seen.Contains(e.Address) {
				continue
			}
			seen[utils.AddressKey(e.Address)] = struct{}{}
			out = append(out, e)
			kept++
		}
		l.logger.Info("Ban list file loaded", "path", file, "count", kept)
	}
	return out, nil
}

func (l *BanListLoader) readFile(path string) ([]entity.BanTokenRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var entries []entity.BanTokenRequest
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return entries, nil
}
