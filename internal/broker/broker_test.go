package broker

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_URI(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "plain",
			opts: Options{Host: "localhost", Port: 1883},
			want: "tcp://localhost:1883",
		},
		{
			name: "tls",
			opts: Options{Host: "broker.example.com", Port: 8883, TLS: true},
			want: "ssl://broker.example.com:8883",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.URI())
		})
	}
}

func TestNew_NotConnected(t *testing.T) {
	c := New(Options{Host: "localhost", Port: 1883, ClientID: "test"}, zerolog.Nop())
	require.NotNil(t, c)
	assert.False(t, c.Connected())
	assert.NotNil(t, c.Events())
}
