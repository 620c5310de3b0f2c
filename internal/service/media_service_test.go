package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandshq/strands-api/internal/config"
	"github.com/strandshq/strands-api/internal/utils"
)

func mediaConfig(url string) config.MediaConfig {
	return config.MediaConfig{BaseURL: url, Token: "upload-token", Timeout: 5 * time.Second}
}

func TestUploadChunksSequentially(t *testing.T) {
	// Just over two chunks worth of pseudo-random bytes.
	data := make([]byte, uploadChunkSize*2+1234)
	for i := range data {
		data[i] = byte(i * 31)
	}

	var received []chunkPayload
	var reassembled bytes.Buffer
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer upload-token", r.Header.Get("Authorization"))

		var payload chunkPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		received = append(received, payload)

		raw, err := base64.StdEncoding.DecodeString(payload.ChunkData)
		require.NoError(t, err)
		reassembled.Write(raw)

		if payload.ChunkIndex == payload.TotalChunks-1 {
			fmt.Fprintf(w, `{"data":{"file_url":"https://cdn.example/%s"}}`, payload.FileID)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	svc := NewMediaService(mediaConfig(srv.URL))
	url, err := svc.Upload(context.Background(), "salon-images", false, data)
	require.NoError(t, err)
	assert.Contains(t, url, "https://cdn.example/")

	require.Len(t, received, 3)
	for i, payload := range received {
		assert.Equal(t, i, payload.ChunkIndex)
		assert.Equal(t, 3, payload.TotalChunks)
		assert.Equal(t, "salon-images", payload.FolderName)
		assert.Equal(t, received[0].FileID, payload.FileID)
	}
	assert.Equal(t, data, reassembled.Bytes(), "chunks reassemble to the original file")
}

func TestUploadURLFallbacks(t *testing.T) {
	bodies := []string{
		`{"link":"https://img.example/a"}`,
		`{"file_url":"https://img.example/b"}`,
		`{"url":"https://img.example/c"}`,
		`{"data":{"link":"https://img.example/d"}}`,
		`{"data":{"url":"https://img.example/e"}}`,
	}
	want := []string{
		"https://img.example/a",
		"https://img.example/b",
		"https://img.example/c",
		"https://img.example/d",
		"https://img.example/e",
	}
	for i, body := range bodies {
		assert.Equal(t, want[i], resolveUploadURL([]byte(body)), body)
	}
	assert.Empty(t, resolveUploadURL([]byte(`{"ok":true}`)))
	assert.Empty(t, resolveUploadURL([]byte(`not json`)))
}

func TestUploadNoResolvableURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	svc := NewMediaService(mediaConfig(srv.URL))
	_, err := svc.Upload(context.Background(), "f", false, []byte("tiny"))
	assert.ErrorIs(t, err, utils.ErrUploadNoURL)
}

func TestUploadDisabledWithoutBaseURL(t *testing.T) {
	svc := NewMediaService(config.MediaConfig{})
	_, err := svc.Upload(context.Background(), "f", false, []byte("tiny"))
	assert.ErrorIs(t, err, utils.ErrUploadDisabled)
}

func TestUploadEndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewMediaService(mediaConfig(srv.URL))
	_, err := svc.Upload(context.Background(), "f", false, []byte("tiny"))
	assert.Error(t, err)
}
