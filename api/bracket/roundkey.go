/* roundkey.go
 * Contains the helpers for building and parsing round keys of the form "{bracket}-{round}"
 */

package bracket

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRoundKey is returned when a round key can't be parsed
var ErrInvalidRoundKey = errors.New("invalid round key")

// RoundKey creates a unique key for a bracket/round combination, e.g. "winners-1"
func RoundKey(b Bracket, round int) string {
	return fmt.Sprintf("%s-%d", b, round)
}

// ParseRoundKey parses a round key back into bracket and round.
// Preconditions: Receives a key built by RoundKey, e.g. "losers-10"
// Postconditions: Returns the bracket and round, or ErrInvalidRoundKey if the key has no separator or the round
// isn't a non-negative integer. Keys come from urls and chat commands so this is checked rather than assumed
func ParseRoundKey(key string) (Bracket, int, error) {
	idx := strings.LastIndex(key, "-")
	if idx <= 0 || idx == len(key)-1 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidRoundKey, key)
	}

	round, err := strconv.Atoi(key[idx+1:])
	if err != nil || round < 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidRoundKey, key)
	}

	return Bracket(key[:idx]), round, nil
}
