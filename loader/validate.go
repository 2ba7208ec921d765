package loader

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nathoo/midway/engine/state"
)

// WarnOut receives validation warnings.
var WarnOut io.Writer = os.Stderr

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled defs for completeness and consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	if defs.Carnival.Title == "" {
		ve.Errors = append(ve.Errors, "Carnival.title is required")
	}

	// Every pool the script draws from must exist and have entries.
	for _, name := range state.RequiredPools {
		entries, ok := defs.Pools[name]
		switch {
		case !ok:
			ve.Errors = append(ve.Errors, fmt.Sprintf("pool %q is not defined", name))
		case len(entries) == 0:
			ve.Errors = append(ve.Errors, fmt.Sprintf("pool %q is empty", name))
		}
	}

	// Entries non-blank and unique within a pool.
	for _, name := range sortedPoolNames(defs) {
		seen := map[string]bool{}
		for i, entry := range defs.Pools[name] {
			if strings.TrimSpace(entry) == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"pool %q entry %d is blank", name, i+1))
				continue
			}
			if seen[entry] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"pool %q lists %q more than once", name, entry))
			}
			seen[entry] = true
		}
	}

	// A prize belongs to exactly one tier.
	owner := map[string]string{}
	for _, name := range state.PrizePools {
		for _, prize := range defs.Pools[name] {
			if other, ok := owner[prize]; ok && other != name {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"prize %q is in both %q and %q", prize, other, name))
				continue
			}
			owner[prize] = name
		}
	}

	// Warnings: pools nothing draws from.
	required := map[string]bool{}
	for _, name := range state.RequiredPools {
		required[name] = true
	}
	for _, name := range sortedPoolNames(defs) {
		if !required[name] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"pool %q is not used by any attraction", name))
		}
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(WarnOut, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func sortedPoolNames(defs *state.Defs) []string {
	names := make([]string, 0, len(defs.Pools))
	for name := range defs.Pools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
