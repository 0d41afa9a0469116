package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/userdir-cli/internal/ports"
)

// promptConfirmer asks a yes/no question on the terminal. With assumeYes set
// (the --yes flag) it approves without prompting.
type promptConfirmer struct {
	in        io.Reader
	out       io.Writer
	assumeYes bool
}

var _ ports.Confirmer = (*promptConfirmer)(nil)

func (c *promptConfirmer) Confirm(prompt string) bool {
	if c.assumeYes {
		return true
	}

	_, _ = fmt.Fprintf(c.out, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
