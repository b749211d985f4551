// Package policy decides which assets the current session may see in full.
// This is a display gate only: the backend does not enforce it, so it must
// never be mistaken for access control.
package policy

// Elevated tokens see every asset regardless of sender.
var elevatedTokens = map[string]bool{
	"softwareag": true,
	"master":     true,
}

// CanViewDetails reports whether a session holding token may see the full
// details of an asset submitted by sender. Owners see their own assets;
// elevated tokens see all of them.
func CanViewDetails(token, sender string) bool {
	if token == "" {
		return false
	}
	return sender == token || elevatedTokens[token]
}

// IsElevated reports whether token belongs to the privileged set.
func IsElevated(token string) bool {
	return elevatedTokens[token]
}
