package dto

// UpdatePreferenceRequest writes one view setting. Values are opaque strings;
// multi-select filters arrive as JSON-encoded arrays.
type UpdatePreferenceRequest struct {
	Value string `json:"value"`
}

// PreferenceItem is the API shape for a single stored preference.
type PreferenceItem struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Default bool   `json:"default,omitempty"`
}
