package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	h := http.NewServeMux()
	srv := New(":9090", h, 10*time.Second)

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, h, srv.Handler)
	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 15*time.Second, srv.WriteTimeout, "write deadline outlasts the upstream timeout")
}
