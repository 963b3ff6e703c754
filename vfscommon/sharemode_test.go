package vfscommon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfscore/vfscore/vlock"
)

func TestShareModeSet(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want vlock.ShareMode
	}{
		{"none", vlock.ShareNone},
		{"Read", vlock.ShareRead},
		{"WRITE", vlock.ShareWrite},
		{"readwrite", vlock.ShareReadWrite},
	} {
		var s ShareMode
		require.NoError(t, s.Set(tc.in))
		assert.Equal(t, tc.want, s.Value)
	}
}

func TestShareModeSetRejectsUnknown(t *testing.T) {
	var s ShareMode
	require.Error(t, s.Set("bogus"))
}

func TestShareModeJSONRoundTrip(t *testing.T) {
	s := ShareMode{Value: vlock.ShareReadWrite}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `"ReadWrite"`, string(data))

	var got ShareMode
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, vlock.ShareReadWrite, got.Value)
}

func TestShareModeString(t *testing.T) {
	assert.Equal(t, "Read", ShareMode{Value: vlock.ShareRead}.String())
}
