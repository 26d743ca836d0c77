package entity

import "strings"

// SortField selects the token table ordering.
type SortField string

const (
	SortByValue  SortField = "value"
	SortByName   SortField = "name"
	SortByPrice  SortField = "price"
	SortByChange SortField = "change"
)

// SortDirection flips the natural ordering of a SortField.
type SortDirection string

const (
	SortDesc SortDirection = "desc"
	SortAsc  SortDirection = "asc"
)

// TokenQuery is the filter and sort state of the token table.
type TokenQuery struct {
	Search      string
	Sort        SortField
	Direction   SortDirection
	IncludeNFTs bool
}

// ParseSortField maps user input to a SortField, defaulting to value.
func ParseSortField(s string) SortField {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case SortByName:
		return SortByName
	case SortByPrice:
		return SortByPrice
	case SortByChange:
		return SortByChange
	default:
		return SortByValue
	}
}

// ParseSortDirection maps user input to a SortDirection, defaulting to desc.
func ParseSortDirection(s string) SortDirection {
	if SortDirection(strings.ToLower(strings.TrimSpace(s))) == SortAsc {
		return SortAsc
	}
	return SortDesc
}
