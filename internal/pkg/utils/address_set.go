package utils

import "strings"

// AddressKey is the case-insensitive comparison key of an address.
func AddressKey(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// AddressSet matches addresses case-insensitively. Empty addresses never match.
type AddressSet map[string]struct{}

func NewAddressSet(addresses ...string) AddressSet {
	set := make(AddressSet, len(addresses))
	for _, a := range addresses {
		if key := AddressKey(a); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func (s AddressSet) Contains(address string) bool {
	key := AddressKey(address)
	if key == "" {
		return false
	}
	_, ok := s[key]
	return ok
}
