package kernel

import "strings"

// Prefixes are the package-name families recognised as kernel images.
var Prefixes = []string{
	"linux-image-",
	"kfreebsd-image-",
	"gnumach-image-",
}

var debugSuffixes = []string{"-dbg", "-dbgsym"}

// ParseName reports whether name is a versioned kernel image package and, if
// so, returns the kernel version embedded in it and its family prefix.
//
// The version is everything after the prefix. It must start with one or more
// decimal digits followed by a dot, which excludes meta-packages such as
// linux-image-amd64. Debug symbol packages are rejected.
func ParseName(name string) (version, prefix string, ok bool) {
	for _, p := range Prefixes {
		if strings.HasPrefix(name, p) {
			prefix = p
			break
		}
	}
	if prefix == "" {
		return "", "", false
	}

	version = name[len(prefix):]
	for _, suffix := range debugSuffixes {
		if strings.HasSuffix(version, suffix) {
			return "", "", false
		}
	}

	if !hasNumericLead(version) {
		return "", "", false
	}
	return version, prefix, true
}

// hasNumericLead reports whether s begins with digits immediately followed
// by a '.'.
func hasNumericLead(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > 0 && i < len(s) && s[i] == '.'
}
