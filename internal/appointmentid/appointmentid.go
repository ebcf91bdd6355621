// Package appointmentid allocates the human-readable appointment keys.
// IDs look like BF00-1, BF00-2, ... with a single global sequence.
package appointmentid

import (
	"fmt"
	"strconv"
	"strings"
)

const prefix = "BF00"

// Next derives the follow-up ID from the current maximum stored ID. An
// empty current maximum (empty table) starts the sequence at BF00-1. A
// malformed maximum also yields BF00-1, silently restarting the sequence;
// the store's primary key catches the collision and the caller retries.
func Next(currentMax string) string {
	next := 1
	if currentMax != "" {
		parts := strings.Split(currentMax, "-")
		if len(parts) == 2 {
			if n, err := strconv.Atoi(parts[1]); err == nil {
				next = n + 1
			}
		}
	}
	return fmt.Sprintf("%s-%d", prefix, next)
}
