package valuation

import (
	"cmp"
	"slices"
	"strings"

	"portfolio_dashboard/internal/domain/entity"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TokenValue is the USD value used for sorting and display. The NFT row's
// price is an ETH floor, so it is converted with the NFT rate.
func (e *Engine) TokenValue(t entity.AggregatedToken) float64 {
	value := t.Balance.InexactFloat64() * t.Price()
	if t.IsNFTCollection() {
		return value * e.nftEthUSDRate
	}
	return value
}

// TokenPrice is the USD price used for sorting.
func (e *Engine) TokenPrice(t entity.AggregatedToken) float64 {
	if t.IsNFTCollection() {
		return t.Price() * e.nftEthUSDRate
	}
	return t.Price()
}

// Filter keeps the NFT row unconditionally. Other rows must match the search
// on symbol or name (case-insensitive) and carry a positive price, except
// stablecoins and native SOL which are kept without one.
func (e *Engine) Filter(tokens []entity.AggregatedToken, search string) []entity.AggregatedToken {
	needle := strings.ToLower(search)
	out := make([]entity.AggregatedToken, 0, len(tokens))
	for _, t := range tokens {
		if keepToken(t, needle) {
			out = append(out, t)
		}
	}
	return out
}

func keepToken(t entity.AggregatedToken, needle string) bool {
	if t.IsNFTCollection() {
		return true
	}
	matches := strings.Contains(strings.ToLower(t.Symbol), needle) ||
		strings.Contains(strings.ToLower(t.Name), needle)
	if !matches {
		return false
	}
	if entity.IsStablecoin(t.Symbol) || (t.Type == entity.TokenTypeNative && t.Symbol == entity.SymbolSOL) {
		return true
	}
	return t.Price() > 0
}

// Sort returns a stably sorted copy. Each field has a natural order (value,
// price and change descending, name ascending); SortAsc negates it.
func (e *Engine) Sort(tokens []entity.AggregatedToken, field entity.SortField, direction entity.SortDirection) []entity.AggregatedToken {
	compare := e.comparator(field)
	sign := 1
	if direction == entity.SortAsc {
		sign = -1
	}
	out := slices.Clone(tokens)
	slices.SortStableFunc(out, func(a, b entity.AggregatedToken) int {
		return sign * compare(a, b)
	})
	return out
}

// FilterAndSort applies the whole token table pipeline.
func (e *Engine) FilterAndSort(tokens []entity.AggregatedToken, q entity.TokenQuery) []entity.AggregatedToken {
	return e.Sort(e.Filter(tokens, q.Search), q.Sort, q.Direction)
}

func (e *Engine) comparator(field entity.SortField) func(a, b entity.AggregatedToken) int {
	switch field {
	case entity.SortByName:
		// collate.Collator keeps scratch buffers, one per sort.
		collator := collate.New(language.Und)
		return func(a, b entity.AggregatedToken) int {
			return collator.CompareString(a.Symbol, b.Symbol)
		}
	case entity.SortByPrice:
		return func(a, b entity.AggregatedToken) int {
			return cmp.Compare(e.TokenPrice(b), e.TokenPrice(a))
		}
	case entity.SortByChange:
		return func(a, b entity.AggregatedToken) int {
			return cmp.Compare(b.Change24h(), a.Change24h())
		}
	default:
		return func(a, b entity.AggregatedToken) int {
			return cmp.Compare(e.TokenValue(b), e.TokenValue(a))
		}
	}
}

// Rows decorates tokens with their value, share of total and display balance.
func (e *Engine) Rows(tokens []entity.AggregatedToken, total float64) []entity.TokenRow {
	rows := make([]entity.TokenRow, 0, len(tokens))
	for _, t := range tokens {
		value := e.TokenValue(t)
		rows = append(rows, entity.TokenRow{
			AggregatedToken:     t,
			ValueUSD:            value,
			PortfolioPercentage: Percentage(value, total),
			DisplayBalance:      FormatTokenBalance(t.Balance.InexactFloat64(), t.Symbol),
		})
	}
	return rows
}

// Paginate slices rows into a page. page is 1-based; pageSize <= 0 returns
// everything on a single page.
func Paginate(rows []entity.TokenRow, page, pageSize int) entity.TokenPage {
	total := len(rows)
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = max(total, 1)
	}
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := min(start+pageSize, total)

	return entity.TokenPage{
		Tokens:     slices.Clone(rows[start:end]),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
