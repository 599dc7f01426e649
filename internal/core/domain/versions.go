package domain

import (
	"strings"

	"github.com/coreos/go-semver/semver"
	"go.trai.ch/zerr"
)

// DefaultVersions holds the version picked when a tool is requested without one.
var DefaultVersions = map[string]string{
	ToolCmake:   "3.27.7",
	ToolNinja:   "1.11.1",
	ToolConan:   "2.0.13",
	ToolMeson:   "1.2.3",
	ToolLLVM:    "17.0.6",
	ToolDoxygen: "1.9.8",
}

// ResolveVersion interprets a raw version input for a tool.
// It returns ok=false when the input asks to skip the tool ("" or "false").
func ResolveVersion(tool, input string) (version string, ok bool, err error) {
	switch v := strings.TrimSpace(input); strings.ToLower(v) {
	case "", "false":
		return "", false, nil
	case "true", "latest":
		def, found := DefaultVersions[tool]
		if !found {
			return "", false, zerr.With(ErrUnknownTool, "tool", tool)
		}
		return def, true, nil
	default:
		normalized, err := NormalizeVersion(v)
		if err != nil {
			return "", false, zerr.With(err, "tool", tool)
		}
		return normalized, true, nil
	}
}

// NormalizeVersion validates a version string, padding "1.2" to "1.2.0" for
// parsing. The original text is returned so URLs keep the vendor spelling.
func NormalizeVersion(v string) (string, error) {
	v = strings.TrimPrefix(v, "v")
	padded := v
	if base, _, _ := strings.Cut(v, "-"); strings.Count(base, ".") < 2 {
		parts := strings.Count(base, ".")
		suffix := strings.TrimPrefix(v, base)
		padded = base + strings.Repeat(".0", 2-parts) + suffix
	}
	if _, err := semver.NewVersion(padded); err != nil {
		return "", zerr.With(zerr.Wrap(err, ErrInvalidVersion.Error()), "version", v)
	}
	return v, nil
}
