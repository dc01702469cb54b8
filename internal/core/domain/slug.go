package domain

// =============================================================================
// Slug Generation
// =============================================================================

// SlugifyFileName converts a report name to a safe archive file name.
//
// The transformation rules are:
//   - Lowercase letters (a-z), digits (0-9), hyphens and underscores are kept
//   - Uppercase letters (A-Z) are converted to lowercase
//   - Spaces are converted to hyphens
//   - All other characters (including path separators and dots) are removed
//
// This is a pure function with no side effects.
//
// Example:
//
//	SlugifyFileName("March Summary")          // returns "march-summary"
//	SlugifyFileName("../etc/passwd")          // returns "etcpasswd"
//	SlugifyFileName("summary_2024-03-15_ab")  // returns "summary_2024-03-15_ab"
func SlugifyFileName(name string) string {
	slug := ""
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			slug += string(r)
		} else if r >= 'A' && r <= 'Z' {
			slug += string(r + 32) // convert to lowercase
		} else if r == ' ' {
			slug += "-"
		}
		// All other characters are dropped
	}
	return slug
}
