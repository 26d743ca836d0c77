package entity

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Amount is a numeric value received from the backend. The backend sends
// balances either as JSON strings or as JSON numbers; Amount keeps the literal
// text so that 18-decimal integers survive without float rounding.
type Amount string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*a = ""
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(strings.TrimSpace(s))
		return nil
	}
	*a = Amount(raw)
	return nil
}

// MarshalJSON always emits the amount as a JSON string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

// IsEmpty reports whether the backend omitted the value.
func (a Amount) IsEmpty() bool {
	return strings.TrimSpace(string(a)) == ""
}

// Decimal parses the amount. Scientific notation ("1.5e18") is accepted.
func (a Amount) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(string(a)))
}
