// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repraze/repraze-apps-sub001/internal/config"
	"github.com/repraze/repraze-apps-sub001/internal/handler"
	myHTTP "github.com/repraze/repraze-apps-sub001/internal/handler/http"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/internal/service"
)

func testHandlers() *handler.Handlers {
	return &handler.Handlers{HTTP: myHTTP.NewHandler(&service.Services{}, logger.Nop())}
}

// freeAddress returns a loopback address nothing is listening on.
func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewServer_NoAddress(t *testing.T) {
	_, err := NewServer(testHandlers(), config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)

	_, err = NewServer(&handler.Handlers{}, config.Server{HTTPAddress: ":8080"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestServer_RunServesUntilCancelled(t *testing.T) {
	addr := freeAddress(t)
	srv, err := NewServer(testHandlers(), config.Server{
		HTTPAddress:     addr,
		RequestTimeout:  time.Second,
		ShutdownTimeout: time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://%s/health", addr)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunReportsListenFailure(t *testing.T) {
	srv, err := NewServer(testHandlers(), config.Server{HTTPAddress: "127.0.0.1:99999"}, logger.Nop())
	require.NoError(t, err)

	assert.Error(t, srv.Run(context.Background()))
}
