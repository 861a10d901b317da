/* models.go
 * This file contains the models used by the external package when fetching tournament data from the backend.
 * Identifiers are canonicalised here, once, so nothing downstream has to care whether they arrived as numbers or strings
 */

package external

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Largest magnitude at which every whole float64 is exact
const maxExactFloat = 1 << 53

// ID is a canonical identifier. Upstream data sends ids as numbers or strings interchangeably, both decode to the
// same ID. The empty ID means the value was absent or null
type ID string

// IsZero reports whether the identifier is absent
func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a string, an integer or a float holding an integer. null, booleans, objects and arrays
// decode to the empty ID
func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*id = ID(s)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*id = NewID(n)
		}
	}
	return nil
}

// MarshalJSON writes the empty ID as null
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(string(id))
}

// NewID canonicalises a number or string value into an ID. Whole floats are written without a fractional part so
// that 7, 7.0 and "7" all compare equal
func NewID(v any) ID {
	switch x := v.(type) {
	case nil:
		return ""
	case ID:
		return x
	case string:
		return ID(x)
	case int:
		return ID(strconv.Itoa(x))
	case int32:
		return ID(strconv.FormatInt(int64(x), 10))
	case int64:
		return ID(strconv.FormatInt(x, 10))
	case float64:
		if x == float64(int64(x)) {
			return ID(strconv.FormatInt(int64(x), 10))
		}
		return ID(strconv.FormatFloat(x, 'f', -1, 64))
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return ID(strconv.FormatInt(i, 10))
		}
		if f, err := x.Float64(); err == nil {
			return NewID(f)
		}
		return ID(x.String())
	default:
		return ID(fmt.Sprint(x))
	}
}

// Contestant is a single entrant in the bracket
type Contestant struct {
	ID   ID     `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Matchup is one contest in the bracket. Number is the 1-based position in the fixed bracket layout and is 0 when
// the backend did not supply one
type Matchup struct {
	ID              ID     `json:"id" bson:"id"`
	Number          int    `json:"number,omitempty" bson:"number,omitempty"`
	ContestantOneID ID     `json:"contestant_one_id" bson:"contestant_one_id,omitempty"`
	ContestantTwoID ID     `json:"contestant_two_id" bson:"contestant_two_id,omitempty"`
	Outcome         ID     `json:"outcome" bson:"outcome,omitempty"`
	YoutubeURL      string `json:"youtube_url,omitempty" bson:"youtube_url,omitempty"`
}

// matchupWire is the decoding shape for a matchup. It carries the legacy field names (player1Id, winnerId, videoUrl)
// so older payloads map onto the canonical schema
type matchupWire struct {
	ID              ID          `json:"id"`
	Number          json.RawMessage `json:"number"`
	ContestantOneID ID          `json:"contestant_one_id"`
	ContestantTwoID ID          `json:"contestant_two_id"`
	Outcome         ID          `json:"outcome"`
	YoutubeURL      string      `json:"youtube_url"`

	Player1ID ID     `json:"player1Id"`
	Player2ID ID     `json:"player2Id"`
	WinnerID  ID     `json:"winnerId"`
	VideoURL  string `json:"videoUrl"`
}

// UnmarshalJSON decodes the canonical schema, falling back to legacy field names where the canonical field is absent
func (m *Matchup) UnmarshalJSON(data []byte) error {
	var w matchupWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*m = Matchup{
		ID:              w.ID,
		Number:          decodeNumber(w.Number),
		ContestantOneID: firstID(w.ContestantOneID, w.Player1ID),
		ContestantTwoID: firstID(w.ContestantTwoID, w.Player2ID),
		Outcome:         firstID(w.Outcome, w.WinnerID),
		YoutubeURL:      w.YoutubeURL,
	}
	if m.YoutubeURL == "" {
		m.YoutubeURL = w.VideoURL
	}
	return nil
}

// decodeNumber reads a matchup number from an integer, a whole float or a numeric string. Anything else, including
// values that don't fit in an int, is treated as absent (0) rather than failing the whole payload
func decodeNumber(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0
		}
		text = strings.TrimSpace(text)
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		if n < math.MinInt || n > math.MaxInt {
			return 0
		}
		return int(n)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return 0
	}
	return int(f)
}

// Tournament is the payload returned by the backend
type Tournament struct {
	Contestants []Contestant `json:"contestants" bson:"contestants"`
	Matchups    []Matchup    `json:"matchups" bson:"matchups"`
}

// UnmarshalJSON accepts `contenders` as a legacy alias for `contestants`. Entries that aren't objects, or whose
// plain fields have the wrong type, are dropped one by one so the rest of the tournament still loads
func (t *Tournament) UnmarshalJSON(data []byte) error {
	var w struct {
		Contestants []json.RawMessage `json:"contestants"`
		Contenders  []json.RawMessage `json:"contenders"`
		Matchups    []json.RawMessage `json:"matchups"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	contestants := w.Contestants
	if contestants == nil {
		contestants = w.Contenders
	}
	t.Contestants = decodeEach[Contestant](contestants)
	t.Matchups = decodeEach[Matchup](w.Matchups)
	t.Normalize()
	return nil
}

func decodeEach[T any](raws []json.RawMessage) []T {
	if raws == nil {
		return nil
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Normalize guarantees both sequences are non-nil so callers never have to check
func (t *Tournament) Normalize() {
	if t.Contestants == nil {
		t.Contestants = []Contestant{}
	}
	if t.Matchups == nil {
		t.Matchups = []Matchup{}
	}
}

func firstID(ids ...ID) ID {
	for _, id := range ids {
		if !id.IsZero() {
			return id
		}
	}
	return ""
}
