package domain

import "go.trai.ch/zerr"

// Manifest is a parsed tool manifest file.
type Manifest struct {
	// Tools maps tool names to raw version inputs ("true", "false", "1.11.1").
	Tools map[string]string
	// TempDir overrides Settings.TempDir when set.
	TempDir string
	// ToolCacheRoot overrides Settings.ToolCacheRoot when set.
	ToolCacheRoot string
	// SetupDir overrides Settings.SetupDir when set.
	SetupDir string
}

// Apply returns s with the manifest overrides applied.
func (m *Manifest) Apply(s Settings) Settings {
	if m == nil {
		return s
	}
	if m.TempDir != "" {
		s.TempDir = m.TempDir
	}
	if m.ToolCacheRoot != "" {
		s.ToolCacheRoot = m.ToolCacheRoot
	}
	if m.SetupDir != "" {
		s.SetupDir = m.SetupDir
	}
	return s
}

// Requests resolves the manifest tools into install requests, in ToolOrder.
// Unknown tool names fail with ErrUnknownTool.
func (m *Manifest) Requests(overrides map[string]string) ([]Request, error) {
	raw := make(map[string]string)
	if m != nil {
		for tool, v := range m.Tools {
			raw[tool] = v
		}
	}
	for tool, v := range overrides {
		if v != "" {
			raw[tool] = v
		}
	}

	known := make(map[string]bool, len(ToolOrder))
	for _, tool := range ToolOrder {
		known[tool] = true
	}
	for tool := range raw {
		if !known[tool] {
			return nil, zerr.With(ErrUnknownTool, "tool", tool)
		}
	}

	var requests []Request
	for _, tool := range ToolOrder {
		version, ok, err := ResolveVersion(tool, raw[tool])
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		requests = append(requests, Request{Tool: tool, Version: version})
	}
	return requests, nil
}
