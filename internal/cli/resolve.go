package cli

import (
	"context"
	"fmt"
	"strings"
)

// minIDPrefix is the shortest session ID prefix accepted by --id.
const minIDPrefix = 4

// resolveSessionID expands a session ID prefix, as printed in tables, to
// the full ID of the owner's running session. Inputs that do not prefix
// the running session pass through unchanged so the service can report
// them as not running.
func resolveSessionID(ctx context.Context, a *App, owner, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	live, err := a.Sessions.Resume(ctx, owner)
	if err != nil {
		return "", fmt.Errorf("resolving session %q: %w", input, err)
	}
	if live == nil || live.ID == input {
		return input, nil
	}
	if len(input) >= minIDPrefix && strings.HasPrefix(live.ID, input) {
		return live.ID, nil
	}
	return input, nil
}
