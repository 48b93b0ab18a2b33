package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// AskConfirmation prompts on stdout and accepts "y" or "yes". A closed or
// unreadable stdin counts as a refusal.
func AskConfirmation(prompt string) bool {
	fmt.Printf("%s: ", prompt)

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
