// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Interactive confirmation prompt for destructive operations.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ConfirmAction prompts the user with a yes/no question on stdin and
// returns true only for an explicit "y" or "yes". Non-TTY stdin
// (scripts, pipes) gets false so destructive operations need --confirm.
func ConfirmAction(prompt string) bool {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return false
	}

	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
