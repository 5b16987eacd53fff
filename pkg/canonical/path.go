package canonical

import "strings"

// StripBasePath removes basePath from the start of path when the match ends
// at a segment boundary. A base path of "" or "/" leaves path untouched.
func StripBasePath(path, basePath string) string {
	base := strings.TrimRight(basePath, "/")
	if base == "" {
		return path
	}

	rest, ok := strings.CutPrefix(path, base)
	if !ok {
		return path
	}
	if rest == "" {
		return ""
	}
	if rest[0] == '/' {
		return rest[1:]
	}
	return path
}
