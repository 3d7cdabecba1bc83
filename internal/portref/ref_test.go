// internal/portref/ref_test.go
package portref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		expectErr   bool
		expectedRef Ref
	}{
		{
			name:        "simple reference",
			raw:         "power1.atp_out",
			expectedRef: Ref{Component: "power1", Port: "atp_out"},
		},
		{
			name:        "hyphenated component",
			raw:         "left-lung.oxygen_in",
			expectedRef: Ref{Component: "left-lung", Port: "oxygen_in"},
		},
		{
			name:      "error - empty string",
			raw:       "",
			expectErr: true,
		},
		{
			name:      "error - missing port",
			raw:       "power1",
			expectErr: true,
		},
		{
			name:      "error - too many segments",
			raw:       "a.b.c",
			expectErr: true,
		},
		{
			name:      "error - empty segment",
			raw:       "power1.",
			expectErr: true,
		},
		{
			name:      "error - invalid characters",
			raw:       "power 1.atp_out",
			expectErr: true,
		},
		{
			name:      "error - lone hyphen",
			raw:       "-.atp_out",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := Parse(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedRef, ref)
		})
	}
}

func TestRef_RoundTrip(t *testing.T) {
	for _, raw := range []string{"p.glucose_in", "meta2.status_out", "brain-2.atp_in"} {
		t.Run(raw, func(t *testing.T) {
			ref, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, ref.String())
			assert.Equal(t, ref, New(ref.Component, ref.Port))
		})
	}
}

func TestCheckName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"power1", "brain_2", "meta-a"} {
		assert.NoError(t, CheckName(name), name)
		assert.True(t, ValidName(name), name)
	}
	for _, name := range []string{"", "-", "a.b", "with space"} {
		assert.Error(t, CheckName(name), name)
		assert.False(t, ValidName(name), name)
	}
}
