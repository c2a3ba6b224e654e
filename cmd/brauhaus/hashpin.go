package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ferment8/brauhaus-core/internal/auth"
)

// runHashPIN implements the hash-pin subcommand: it hashes an operator
// PIN with Argon2id and prints the PHC string for the
// security.operator_pin_hash config key (or BRAUHAUS_OPERATOR_PIN_HASH).
//
// The PIN is taken from the first argument, or read from stdin when no
// argument is given so it stays out of shell history.
func runHashPIN(args []string, out io.Writer) error {
	var pin string
	if len(args) > 0 {
		pin = args[0]
	} else {
		fmt.Fprint(os.Stderr, "PIN: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading pin: %w", err)
		}
		pin = strings.TrimSpace(line)
	}

	if pin == "" {
		return fmt.Errorf("pin must not be empty")
	}

	hash, err := auth.HashPIN(pin)
	if err != nil {
		return fmt.Errorf("hashing pin: %w", err)
	}

	fmt.Fprintln(out, hash)
	return nil
}
