package anki

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/config"
	"codeberg.org/snonux/wortkarte/internal/testutil"
)

func testConfig(url string) config.AnkiConfig {
	cfg := config.Default().Anki
	cfg.ConnectURL = url
	return cfg
}

func TestClient_Version(t *testing.T) {
	fake := testutil.NewFakeAnki(t)
	client := NewClient(testConfig(fake.URL), nil, zap.NewNop())

	v, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, APIVersion, v)
}

func TestClient_APIError(t *testing.T) {
	fake := testutil.NewFakeAnki(t)
	fake.SetFail("findNotes", "collection is not available")
	client := NewClient(testConfig(fake.URL), nil, zap.NewNop())

	var ids []int64
	err := client.Invoke(context.Background(), "findNotes", map[string]string{"query": "x"}, &ids)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "findNotes", apiErr.Action)
	assert.Equal(t, "collection is not available", apiErr.Message)
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not anki</html>`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), nil, zap.NewNop())
	_, err := client.Version(context.Background())

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "version", decErr.Action)
}

func TestClient_WrongResultType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "six", "error": null}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), nil, zap.NewNop())
	_, err := client.Version(context.Background())

	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestClient_BreakerOpensOnTransportFailures(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := testConfig(url)
	cfg.MaxFailures = 2
	cfg.OpenTimeout = time.Minute
	client := NewClient(cfg, nil, zap.NewNop())

	for range 2 {
		_, err := client.Version(context.Background())
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrUnavailable))
	}

	_, err := client.Version(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_APIErrorsDoNotTripBreaker(t *testing.T) {
	fake := testutil.NewFakeAnki(t)
	fake.SetFail("version", "busy")

	cfg := testConfig(fake.URL)
	cfg.MaxFailures = 1
	client := NewClient(cfg, nil, zap.NewNop())

	for range 3 {
		_, err := client.Version(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
	}
	assert.Equal(t, 3, fake.CallCount("version"))
}

func TestClient_StoreMediaFile(t *testing.T) {
	fake := testutil.NewFakeAnki(t)
	client := NewClient(testConfig(fake.URL), nil, zap.NewNop())

	name, err := client.StoreMediaFile(context.Background(), "Haus_word.mp3", []byte{0xFF, 0xFB, 0x00})
	require.NoError(t, err)
	assert.Equal(t, "Haus_word.mp3", name)

	data, ok := fake.Media("Haus_word.mp3")
	require.True(t, ok)
	assert.Equal(t, []byte{0xFF, 0xFB, 0x00}, data)
}

func TestIsModelExists(t *testing.T) {
	assert.True(t, IsModelExists(&APIError{Action: "createModel", Message: "Model name already exists"}))
	assert.False(t, IsModelExists(&APIError{Action: "createModel", Message: "invalid template"}))
	assert.False(t, IsModelExists(errors.New("already exists")))
	assert.False(t, IsModelExists(nil))
}
