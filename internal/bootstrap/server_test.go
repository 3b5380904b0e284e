package bootstrap

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ShutsDownOnCancel(t *testing.T) {
	log, hook := test.NewNullLogger()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, lis, handler, log) }()

	resp, err := http.Get("http://" + lis.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, "http server stopped", hook.LastEntry().Message)
}

func TestRun_BadAddress(t *testing.T) {
	log, _ := test.NewNullLogger()

	err := Run(context.Background(), config.HTTPConfig{Address: "bad:address:1"}, http.NotFoundHandler(), log)

	assert.ErrorContains(t, err, "listen http")
}
