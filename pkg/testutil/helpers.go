// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/deal-metrics/internal/scenario"
)

// FindResult finds a deal result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []scenario.Result, name string) *scenario.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
