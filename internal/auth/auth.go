// Package auth implements the device-bound activation key and the password
// gate in front of irreversible operations (permanent delete, factory
// reset). The checksum key is an access convenience for a single-user
// device app, not a security control.
package auth

import "strconv"

// GenerateKey derives the activation key from a system identifier: the sum
// of its numeric digits multiplied by 888, rendered as a decimal string.
// Non-digit characters contribute nothing.
func GenerateKey(systemID string) string {
	sum := 0
	for _, ch := range systemID {
		if ch >= '0' && ch <= '9' {
			sum += int(ch - '0')
		}
	}
	return strconv.Itoa(sum * 888)
}

// Gate is the yes/no authorization check callers must pass before
// PurgeForever or FactoryReset.
type Gate struct {
	password string
}

// NewGate builds a gate around the given admin password. When password is
// empty the gate falls back to the key derived from systemID, matching the
// device-bound login of the original app.
func NewGate(password, systemID string) *Gate {
	if password == "" {
		password = GenerateKey(systemID)
	}
	return &Gate{password: password}
}

// Authorize reports whether the supplied password matches. Plain equality:
// this gates a confirmation dialog on a single-user device, nothing more.
func (g *Gate) Authorize(password string) bool {
	return password != "" && password == g.password
}
