package format

// DerefString returns *s, or def when s is nil or empty.
func DerefString(s *string, def string) string {
	if s != nil && *s != "" {
		return *s
	}
	return def
}

// StringPtr returns nil for an empty s and &s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
