//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strconv"
)

// Literal fallbacks shown before the status snapshot has loaded.
const (
	DefaultVersion = "5.5"
	DefaultUptime  = "99.8%"
)

// SystemStatus is the backend's status snapshot. Fields beyond version and uptime are kept in Extra.
type SystemStatus struct {
	Version string         `json:"version"`
	Uptime  string         `json:"uptime"`
	Extra   map[string]any `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (s *SystemStatus) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = SystemStatus{}
	s.Version = displayValue(raw["version"])
	s.Uptime = displayValue(raw["uptime"])
	delete(raw, "version")
	delete(raw, "uptime")
	if len(raw) > 0 {
		s.Extra = raw
	}
	return nil
}

// displayValue renders a string or number field. Zero numbers and other types count as absent.
func displayValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON writes Extra back alongside the known fields.
func (s SystemStatus) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+2)
	for k, v := range s.Extra {
		out[k] = v
	}
	out["version"] = s.Version
	out["uptime"] = s.Uptime
	return json.Marshal(out)
}

// VersionOrDefault returns the version, or the literal default when the snapshot is missing or empty.
func (s *SystemStatus) VersionOrDefault() string {
	if s == nil || s.Version == "" {
		return DefaultVersion
	}
	return s.Version
}

// UptimeOrDefault returns the uptime, or the literal default when the snapshot is missing or empty.
func (s *SystemStatus) UptimeOrDefault() string {
	if s == nil || s.Uptime == "" {
		return DefaultUptime
	}
	return s.Uptime
}
