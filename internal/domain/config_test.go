package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigKey_Validate(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr string
	}{
		{"color", "always", ""},
		{"color", "sometimes", `invalid value "sometimes" for 'color' (expected auto, always, never)`},
		{"history", "false", ""},
		{"history", "no", "expected true, false"},
		{"history_limit", "0", ""},
		{"history_limit", "-1", "non-negative number"},
		{"history_limit", "ten", "non-negative number"},
		{"pager", "most -s", ""},
		{"color_info", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			k, ok := LookupConfigKey(tt.key)
			require.True(t, ok)

			err := k.Validate(tt.value)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfigKeys_DefaultsAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range ConfigKeys {
		require.False(t, seen[k.Name], "duplicate key %s", k.Name)
		seen[k.Name] = true
		if k.Default != "" {
			require.NoError(t, k.Validate(k.Default))
		}
	}

	_, ok := LookupConfigKey("nope")
	require.False(t, ok)
}
