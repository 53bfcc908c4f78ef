/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travisjeffery/go-dynaport"

	"github.com/tochemey/contacts/config"
	ihttp "github.com/tochemey/contacts/internal/http"
	"github.com/tochemey/contacts/log"
)

func newConfig(t *testing.T, options ...config.Option) *config.Config {
	t.Helper()
	ports := dynaport.Get(2)
	options = append([]config.Option{
		config.WithPort(ports[0]),
		config.WithMetricsPort(ports[1]),
	}, options...)
	cfg := config.Default()
	for _, opt := range options {
		opt.Apply(cfg)
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func request(t *testing.T, client *http.Client, method, url, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	bytea, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(bytea)
}

func TestServer(t *testing.T) {
	t.Run("With contacts lifecycle over h2c", func(t *testing.T) {
		ctx := context.Background()
		cfg := newConfig(t)
		srv := newServer(cfg, log.DiscardLogger)
		require.NoError(t, srv.Start(ctx))
		t.Cleanup(func() { assert.NoError(t, srv.Stop(ctx)) })

		client := ihttp.NewClient(time.Second)
		t.Cleanup(client.CloseIdleConnections)
		baseURL := ihttp.URL("127.0.0.1", cfg.Port) + "/api/alice/contacts"

		status, body := request(t, client, http.MethodGet, baseURL, "")
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `[]`, body)

		status, body = request(t, client, http.MethodPost, baseURL, `{"name":"Bob"}`)
		require.Equal(t, http.StatusOK, status)
		created := make(map[string]any)
		require.NoError(t, json.Unmarshal([]byte(body), &created))
		id, ok := created["id"].(string)
		require.True(t, ok)
		assert.Equal(t, "Bob", created["name"])

		status, body = request(t, client, http.MethodPatch, baseURL+"/"+id, `{"phone":"555"}`)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"id":"`+id+`","name":"Bob","phone":"555"}`, body)

		status, _ = request(t, client, http.MethodDelete, baseURL+"/"+id, "")
		assert.Equal(t, http.StatusOK, status)

		status, _ = request(t, client, http.MethodGet, baseURL+"/"+id, "")
		assert.Equal(t, http.StatusNotFound, status)

		require.NoError(t, healthcheck(ctx, ihttp.URL("127.0.0.1", cfg.Port), time.Second))
	})
	t.Run("With metrics exposed", func(t *testing.T) {
		ctx := context.Background()
		cfg := newConfig(t)
		srv := newServer(cfg, log.DiscardLogger)
		require.NoError(t, srv.Start(ctx))
		t.Cleanup(func() { assert.NoError(t, srv.Stop(ctx)) })
		require.NotNil(t, srv.MetricsAddr())

		client := &http.Client{Timeout: time.Second}
		t.Cleanup(client.CloseIdleConnections)
		status, body := request(t, client, http.MethodGet, ihttp.URL("127.0.0.1", cfg.MetricsPort)+"/metrics", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "actorsystem_actors_count")
		assert.Contains(t, body, "contacts_entities_count")
	})
	t.Run("With single tenant routes", func(t *testing.T) {
		ctx := context.Background()
		cfg := newConfig(t, config.WithSingleTenant(true), config.WithMetricsPort(0))
		srv := newServer(cfg, log.DiscardLogger)
		require.NoError(t, srv.Start(ctx))
		t.Cleanup(func() { assert.NoError(t, srv.Stop(ctx)) })
		assert.Nil(t, srv.MetricsAddr())

		client := ihttp.NewClient(time.Second)
		t.Cleanup(client.CloseIdleConnections)
		status, body := request(t, client, http.MethodGet, ihttp.URL("127.0.0.1", cfg.Port)+"/api/contacts", "")
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `[]`, body)
	})
	t.Run("With port already in use", func(t *testing.T) {
		ctx := context.Background()
		cfg := newConfig(t, config.WithMetricsPort(0))
		first := newServer(cfg, log.DiscardLogger)
		require.NoError(t, first.Start(ctx))
		t.Cleanup(func() { assert.NoError(t, first.Stop(ctx)) })

		second := newServer(cfg, log.DiscardLogger)
		assert.Error(t, second.Start(ctx))
	})
}

func TestRun(t *testing.T) {
	cfg := newConfig(t, config.WithMetricsPort(0))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, log.DiscardLogger) }()

	baseURL := ihttp.URL("127.0.0.1", cfg.Port)
	require.Eventually(t, func() bool {
		return healthcheck(context.Background(), baseURL, 100*time.Millisecond) == nil
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(cfg.ShutdownTimeout + time.Second):
		t.Fatal("run did not return after cancellation")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Run("With explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "contacts.env")
		require.NoError(t, os.WriteFile(path, []byte("CONTACTS_TEST_LOAD_ENV=loaded\n"), 0o600))
		t.Setenv("CONTACTS_TEST_LOAD_ENV", "")
		require.NoError(t, os.Unsetenv("CONTACTS_TEST_LOAD_ENV"))

		require.NoError(t, loadEnv(path))
		assert.Equal(t, "loaded", os.Getenv("CONTACTS_TEST_LOAD_ENV"))
	})
	t.Run("With missing explicit file", func(t *testing.T) {
		assert.Error(t, loadEnv(filepath.Join(t.TempDir(), "missing.env")))
	})
	t.Run("With no default file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		assert.NoError(t, loadEnv(""))
	})
}

func TestHealthcheck(t *testing.T) {
	ports := dynaport.Get(1)
	err := healthcheck(context.Background(), ihttp.URL("127.0.0.1", ports[0]), 100*time.Millisecond)
	assert.Error(t, err)
}
