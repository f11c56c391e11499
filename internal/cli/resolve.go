package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseItemID accepts an issue id as "101" or "#101".
func parseItemID(input string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(input), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q: expected a positive number such as 101 or #101", input)
	}
	return id, nil
}

// parseHours accepts a positive hour amount, optionally suffixed with "h".
func parseHours(input string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(input), "h"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q", input)
	}
	return h, nil
}
