package businessflow

import (
	"strings"
	"testing"

	"github.com/linklift/linklift/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	t.Run("Length", func(t *testing.T) {
		for _, length := range []int{1, 8, 16, 64} {
			slug, err := GenerateSlug(length)
			require.NoError(t, err)
			assert.Len(t, slug, length)
		}
	})

	t.Run("AlphabetMembership", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			slug, err := GenerateSlug(utils.SlugLength)
			require.NoError(t, err)

			for _, c := range slug {
				assert.True(t, strings.ContainsRune(utils.SlugAlphabet, c),
					"slug %q contains character %q outside the alphabet", slug, c)
			}
		}
	})

	t.Run("NoImmediateCollisions", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			slug, err := GenerateSlug(utils.SlugLength)
			require.NoError(t, err)
			assert.False(t, seen[slug], "slug %q generated twice", slug)
			seen[slug] = true
		}
	})

	t.Run("ZeroLength", func(t *testing.T) {
		slug, err := GenerateSlug(0)
		require.NoError(t, err)
		assert.Empty(t, slug)
	})
}

func TestClientMetadataClientIP(t *testing.T) {
	tests := []struct {
		name        string
		ipAddress   string
		forwardedIP string
		want        string
	}{
		{
			name:      "peer address only",
			ipAddress: "203.0.113.7",
			want:      "203.0.113.7",
		},
		{
			name:        "forwarded wins over peer",
			ipAddress:   "10.0.0.1",
			forwardedIP: "198.51.100.4",
			want:        "198.51.100.4",
		},
		{
			name:        "first forwarded entry wins",
			ipAddress:   "10.0.0.1",
			forwardedIP: "198.51.100.4, 10.0.0.2, 10.0.0.3",
			want:        "198.51.100.4",
		},
		{
			name:        "forwarded with surrounding spaces",
			ipAddress:   "10.0.0.1",
			forwardedIP: "  198.51.100.4  ,10.0.0.2",
			want:        "198.51.100.4",
		},
		{
			name:        "blank forwarded falls back to peer",
			ipAddress:   "10.0.0.1",
			forwardedIP: "   ",
			want:        "10.0.0.1",
		},
		{
			name: "everything empty",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata := NewClientMetadata(tt.ipAddress, "Test User Agent")
			metadata.SetForwardedIP(tt.forwardedIP)
			assert.Equal(t, tt.want, metadata.ClientIP())
		})
	}

	t.Run("NilReceiver", func(t *testing.T) {
		var metadata *ClientMetadata
		assert.Equal(t, "", metadata.ClientIP())
	})
}
