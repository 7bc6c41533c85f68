// Package names implements the privacy policy for employee identities:
// unauthenticated viewers only ever see pseudonymous names.
package names

// Display returns the real name for authenticated callers, the pseudonym
// otherwise.
func Display(realName, fakeName string, authenticated bool) string {
	if authenticated {
		return realName
	}
	return fakeName
}
