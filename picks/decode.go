package picks

import (
	"encoding/json"
	"strings"
)

// Outcome classifies the result of decoding a pick cell.
type Outcome int

const (
	// Decoded means the cell yielded a numeric pick.
	Decoded Outcome = iota
	// SkipEmpty is an empty cell or an empty JSON array.
	SkipEmpty
	// SkipNull is a JSON null, either bare or as the first array element.
	SkipNull
	// SkipNonNumeric is valid JSON that does not carry a number.
	SkipNonNumeric
	// SkipMalformed is a cell that is not valid JSON.
	SkipMalformed
)

// String returns a short name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Decoded:
		return "decoded"
	case SkipEmpty:
		return "empty"
	case SkipNull:
		return "null"
	case SkipNonNumeric:
		return "non-numeric"
	case SkipMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Skipped reports whether the outcome contributes no data point.
func (o Outcome) Skipped() bool {
	return o != Decoded
}

// Decode parses one pick cell. A JSON array contributes its first element
// and a bare JSON number is accepted as is. The returned value is only
// meaningful when the outcome is Decoded.
func Decode(cell string) (float64, Outcome) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, SkipEmpty
	}

	var raw any
	if err := json.Unmarshal([]byte(cell), &raw); err != nil {
		return 0, SkipMalformed
	}

	if arr, ok := raw.([]any); ok {
		if len(arr) == 0 {
			return 0, SkipEmpty
		}

		raw = arr[0]
	}

	switch v := raw.(type) {
	case nil:
		return 0, SkipNull
	case float64:
		return v, Decoded
	default:
		return 0, SkipNonNumeric
	}
}
