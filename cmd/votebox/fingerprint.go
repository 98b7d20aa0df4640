package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/udusdev/biovote/internal/verify"
)

// promptFingerprint stands in for the device-local authentication prompt
// on stations without a sensor bridge: the voter confirms at the terminal
// and a declined prompt reads as no-match, exactly like the OS API.
type promptFingerprint struct {
	in       *bufio.Reader
	enrolled bool
}

func (p promptFingerprint) Available() bool {
	return p.enrolled
}

func (p promptFingerprint) Authenticate(ctx context.Context) (verify.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return verify.NoMatch, err
	}

	fmt.Println("Place your finger on the device sensor.")
	answer := strings.ToLower(prompt(p.in, "Confirm your identity [y/N]: "))
	if answer == "y" || answer == "yes" {
		return verify.Match, nil
	}
	return verify.NoMatch, nil
}
