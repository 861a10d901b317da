/* utils.go
 * Utility functions used when parsing configuration values
 */

package config

import (
	"fmt"
	"strings"
)

// convertStrToBool converts a string of true or false into a boolean for comparisons. 1/0 and yes/no are accepted too
// Preconditions: Receives string containing a boolean word (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not a boolean word
func convertStrToBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	switch str {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string %q", str)
}
