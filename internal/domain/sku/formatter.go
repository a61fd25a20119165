// Package sku maps raw billing SKU identifiers to human-readable runner labels.
package sku

import (
	"strings"
)

// computeMarker separates the product prefix from the runner description in
// the newer billing SKU labels, e.g. "Actions Compute - LINUX_4_CORE".
const computeMarker = "Compute - "

// skuLabels maps the raw runner SKU identifiers the export emits to display
// labels.
var skuLabels = map[string]string{
	"actions_linux":               "Ubuntu 2",
	"actions_linux_4_core":        "Ubuntu 4",
	"actions_linux_8_core":        "Ubuntu 8",
	"actions_linux_16_core":       "Ubuntu 16",
	"actions_linux_32_core":       "Ubuntu 32",
	"actions_linux_64_core":       "Ubuntu 64",
	"actions_linux_2_core_arm":    "Ubuntu 2 (ARM)",
	"actions_linux_4_core_arm":    "Ubuntu 4 (ARM)",
	"actions_linux_8_core_arm":    "Ubuntu 8 (ARM)",
	"actions_linux_16_core_arm":   "Ubuntu 16 (ARM)",
	"actions_linux_32_core_arm":   "Ubuntu 32 (ARM)",
	"actions_linux_64_core_arm":   "Ubuntu 64 (ARM)",
	"actions_windows":             "Windows 2",
	"actions_windows_4_core":      "Windows 4",
	"actions_windows_8_core":      "Windows 8",
	"actions_windows_16_core":     "Windows 16",
	"actions_windows_32_core":     "Windows 32",
	"actions_windows_64_core":     "Windows 64",
	"actions_windows_2_core_arm":  "Windows 2 (ARM)",
	"actions_windows_4_core_arm":  "Windows 4 (ARM)",
	"actions_windows_8_core_arm":  "Windows 8 (ARM)",
	"actions_windows_16_core_arm": "Windows 16 (ARM)",
	"actions_windows_32_core_arm": "Windows 32 (ARM)",
	"actions_windows_64_core_arm": "Windows 64 (ARM)",
	"actions_macos":               "MacOS 3",
	"actions_macos_8_core":        "MacOS 8",
	"actions_macos_12_core":       "MacOS 12",
	"actions_macos_large":         "MacOS 12",
	"actions_macos_xlarge":        "MacOS 16 (ARM)",
	"actions_storage":             "Storage",
	"actions_self_hosted":         "Self-hosted",
}

// Formatter formats SKU labels, optionally with custom overrides layered over
// the built-in table. The zero value is usable.
type Formatter struct {
	overrides map[string]string
}

// NewFormatter creates a formatter with custom label overrides. Overrides win
// over the built-in table.
func NewFormatter(overrides map[string]string) *Formatter {
	return &Formatter{overrides: overrides}
}

// Format maps a raw SKU to its display label.
func (f *Formatter) Format(raw string) string {
	if f != nil && f.overrides != nil {
		if label, ok := f.overrides[raw]; ok {
			return label
		}
	}
	return Format(raw)
}

// Format maps a raw SKU string to a human-readable label. Known runner SKUs
// come from the explicit table; newer "... Compute - X" labels go through the
// heuristic transform; everything else is returned unchanged.
func Format(raw string) string {
	if raw == "" {
		return raw
	}
	if label, ok := skuLabels[raw]; ok {
		return label
	}

	idx := strings.Index(raw, computeMarker)
	if idx < 0 {
		return raw
	}

	suffix := raw[idx+len(computeMarker):]
	isARM := strings.Contains(strings.ToUpper(suffix), "ARM")
	if isARM {
		suffix = strings.TrimSuffix(strings.ToUpper(suffix), "_ARM")
	}

	label := strings.ReplaceAll(suffix, "_", " ")
	label = strings.TrimSuffix(label, " CORE")
	label = titleCase(label)
	label = strings.ReplaceAll(label, "Macos", "MacOS")
	if isARM {
		label += " (ARM)"
	}
	return label
}

// titleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
