//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemStatus_Defaults(t *testing.T) {
	var nilStatus *SystemStatus
	assert.Equal(t, "5.5", nilStatus.VersionOrDefault())
	assert.Equal(t, "99.8%", nilStatus.UptimeOrDefault())

	empty := &SystemStatus{}
	assert.Equal(t, DefaultVersion, empty.VersionOrDefault())
	assert.Equal(t, DefaultUptime, empty.UptimeOrDefault())

	loaded := &SystemStatus{Version: "6.0", Uptime: "100%"}
	assert.Equal(t, "6.0", loaded.VersionOrDefault())
	assert.Equal(t, "100%", loaded.UptimeOrDefault())
}

func TestSystemStatus_UnmarshalKeepsExtraFields(t *testing.T) {
	body := `{"version":"5.5","uptime":"99.9%","status":"operational","services":{"ai":"online"}}`

	var status SystemStatus
	require.NoError(t, json.Unmarshal([]byte(body), &status))

	assert.Equal(t, "5.5", status.Version)
	assert.Equal(t, "99.9%", status.Uptime)
	assert.Equal(t, "operational", status.Extra["status"])
	assert.Contains(t, status.Extra, "services")
	assert.NotContains(t, status.Extra, "version")
}

func TestSystemStatus_UnmarshalReplacesPreviousValue(t *testing.T) {
	status := SystemStatus{Version: "1.0", Uptime: "50%", Extra: map[string]any{"old": true}}

	require.NoError(t, json.Unmarshal([]byte(`{"version":"2.0"}`), &status))

	assert.Equal(t, "2.0", status.Version)
	assert.Equal(t, "", status.Uptime)
	assert.Nil(t, status.Extra)
}

func TestSystemStatus_UnmarshalNumericFields(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantVersion string
		wantUptime  string
	}{
		{name: "numbers", body: `{"version":6,"uptime":99.5}`, wantVersion: "6", wantUptime: "99.5"},
		{name: "fractional version", body: `{"version":5.5}`, wantVersion: "5.5", wantUptime: DefaultUptime},
		{name: "zero counts as absent", body: `{"version":0,"uptime":""}`, wantVersion: DefaultVersion, wantUptime: DefaultUptime},
		{name: "other types ignored", body: `{"version":true,"uptime":null}`, wantVersion: DefaultVersion, wantUptime: DefaultUptime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var status SystemStatus
			require.NoError(t, json.Unmarshal([]byte(tt.body), &status))
			assert.Equal(t, tt.wantVersion, status.VersionOrDefault())
			assert.Equal(t, tt.wantUptime, status.UptimeOrDefault())
		})
	}
}

func TestSystemStatus_MarshalRoundTripsExtra(t *testing.T) {
	status := SystemStatus{Version: "5.5", Uptime: "99.8%", Extra: map[string]any{"status": "operational"}}

	data, err := json.Marshal(status)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"5.5","uptime":"99.8%","status":"operational"}`, string(data))
}
