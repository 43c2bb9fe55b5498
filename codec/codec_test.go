package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string         `json:"name"`
	Count int            `json:"count"`
	Gates map[string]int `json:"gates,omitempty"`
}

func TestCodecs(t *testing.T) {
	in := sample{Name: "ghz", Count: 3, Gates: map[string]int{"H": 1, "CX": 2}}

	for _, name := range []string{"json", "go-json"} {
		t.Run(name, func(t *testing.T) {
			c, ok := ByName(name)
			require.True(t, ok)
			assert.Equal(t, name, c.Name())

			b, err := c.Marshal(in)
			require.NoError(t, err)
			assert.Contains(t, string(b), "\n  \"name\": \"ghz\"")

			var out sample
			require.NoError(t, c.Unmarshal(b, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestByName(t *testing.T) {
	c, ok := ByName("")
	require.True(t, ok)
	assert.Equal(t, Default.Name(), c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}
