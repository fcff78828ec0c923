package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c := New(Options{})
	assert.Equal(t, 15*time.Second, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 10, tr.MaxIdleConnsPerHost)
}

func TestNew_Overrides(t *testing.T) {
	c := New(Options{Timeout: time.Second, MaxIdleConnsPerHost: 3})
	assert.Equal(t, time.Second, c.Timeout)
	assert.Equal(t, 3, c.Transport.(*http.Transport).MaxIdleConnsPerHost)
}
