package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Descriptor holds the optional sidecar metadata for a bundle. Missing file or
// parse failure yields the zero value; callers supply their own defaults.
type Descriptor struct {
	Title         string
	ContentRating string
	ExternalLink  string
}

// ReadDescriptor parses the bundle's project.json sidecar. It never returns an
// error: any read or parse failure degrades to an empty descriptor.
func ReadDescriptor(bundleDir string) Descriptor {
	data, err := os.ReadFile(filepath.Join(bundleDir, DescriptorFile))
	if err != nil {
		return Descriptor{}
	}

	var raw struct {
		Title         string `json:"title"`
		ContentRating string `json:"contentrating"`
		WorkshopURL   string `json:"workshopurl"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Descriptor{}
	}

	return Descriptor{
		Title:         strings.TrimSpace(raw.Title),
		ContentRating: strings.ToLower(strings.TrimSpace(raw.ContentRating)),
		ExternalLink:  strings.TrimSpace(raw.WorkshopURL),
	}
}
