package publish

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wetware/internal/history"
)

func TestParseEndpoint(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		wantBase string
		wantPath string
		wantErr  bool
	}{
		{name: "host only", raw: "http://localhost:3000", wantBase: "http://localhost:3000"},
		{name: "custom path", raw: "https://dash.example.com/live/socket.io/", wantBase: "https://dash.example.com", wantPath: "/live/socket.io/"},
		{name: "missing scheme", raw: "localhost:3000", wantErr: true},
		{name: "missing host", raw: "http://", wantErr: true},
		{name: "unparsable", raw: "http://[::1", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			base, path, err := parseEndpoint(tc.raw)

			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBase, base)
			assert.Equal(t, tc.wantPath, path)
		})
	}
}

func TestConnect_RejectsBadURLBeforeDialing(t *testing.T) {
	t.Parallel()

	p, err := Connect(context.Background(), "not a url", Options{})
	require.Error(t, err)
	assert.Nil(t, p)
}

func TestPublisher_ClosedRejectsPublish(t *testing.T) {
	t.Parallel()

	p := &Publisher{closed: true}
	require.NoError(t, p.Close())
	assert.Error(t, p.Publish(history.Snapshot{}))
}
