// Package vfscommon holds small configuration value types shared between
// the CLI and the backends, grounded on the teacher's vfscommon package:
// its FileMode and CacheMode types implement both pflag.Value (so they
// parse directly as command-line flags) and json.Unmarshaler (so they
// parse the same way out of a config file). ShareMode below follows the
// identical shape for vlock.ShareMode.
package vfscommon

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vfscore/vfscore/vlock"
)

// ShareMode wraps vlock.ShareMode so it can be set from a command-line
// flag or unmarshalled from JSON configuration, the way the teacher's
// vfscommon.CacheMode wraps its own int-based enum.
type ShareMode struct {
	Value vlock.ShareMode
}

var shareModeNames = map[string]vlock.ShareMode{
	"none":      vlock.ShareNone,
	"read":      vlock.ShareRead,
	"write":     vlock.ShareWrite,
	"readwrite": vlock.ShareReadWrite,
}

// String implements pflag.Value / fmt.Stringer.
func (s ShareMode) String() string { return s.Value.String() }

// Set implements pflag.Value: it accepts "none", "read", "write", or
// "readwrite", case-insensitively.
func (s *ShareMode) Set(value string) error {
	mode, ok := shareModeNames[strings.ToLower(value)]
	if !ok {
		return fmt.Errorf("vfscommon: unknown share mode %q (want none, read, write, or readwrite)", value)
	}
	s.Value = mode
	return nil
}

// Type implements pflag.Value.
func (s ShareMode) Type() string { return "ShareMode" }

// UnmarshalJSON implements json.Unmarshaler, accepting the same string
// vocabulary as Set.
func (s *ShareMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	return s.Set(str)
}

// MarshalJSON implements json.Marshaler.
func (s ShareMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value.String())
}

var _ pflag.Value = (*ShareMode)(nil)
