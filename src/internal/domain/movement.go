package domain

import (
	"fmt"
	"strings"
)

type MovementKind string

const (
	MovementCredit   MovementKind = "CREDIT"
	MovementWithdraw MovementKind = "WITHDRAW"
)

// ParseMovementKind is the only place a caller-supplied kind string is
// interpreted. Everything downstream works with the two closed variants.
func ParseMovementKind(raw string) (MovementKind, error) {
	switch MovementKind(strings.ToUpper(strings.TrimSpace(raw))) {
	case MovementCredit:
		return MovementCredit, nil
	case MovementWithdraw:
		return MovementWithdraw, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMovementKind, raw)
	}
}
