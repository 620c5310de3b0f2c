package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/strandshq/strands-api/internal/config"
	"github.com/strandshq/strands-api/internal/utils"
)

// uploadChunkSize is the maximum raw byte length of one chunk before base64
// encoding.
const uploadChunkSize = 256 << 10

// chunkPayload is the wire shape the upload endpoint expects per chunk.
type chunkPayload struct {
	FolderName  string `json:"folder_name"`
	IsSecret    bool   `json:"is_secret"`
	FileID      string `json:"file_id"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	ChunkData   string `json:"chunk_data"`
}

// MediaService proxies image uploads to the external chunked-upload endpoint.
// Files are split into sequential chunks, each posted and awaited before the
// next.
type MediaService struct {
	client  *resty.Client
	baseURL string
}

// NewMediaService creates the proxy from media configuration. An empty base
// URL disables uploads.
func NewMediaService(cfg config.MediaConfig) *MediaService {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetHeader("Content-Type", "application/json")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	return &MediaService{client: client, baseURL: cfg.BaseURL}
}

// Upload splits data into chunks, posts them in order, and returns the URL
// the endpoint resolved for the completed file. An empty URL with an error
// means the caller should keep any existing image untouched.
func (s *MediaService) Upload(ctx context.Context, folder string, isSecret bool, data []byte) (string, error) {
	if s.baseURL == "" {
		return "", utils.ErrUploadDisabled
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty upload")
	}

	fileID, err := utils.GenerateFileID("img")
	if err != nil {
		return "", fmt.Errorf("generate file id: %w", err)
	}
	totalChunks := (len(data) + uploadChunkSize - 1) / uploadChunkSize

	var lastBody []byte
	for i := 0; i < totalChunks; i++ {
		start := i * uploadChunkSize
		end := start + uploadChunkSize
		if end > len(data) {
			end = len(data)
		}
		payload := chunkPayload{
			FolderName:  folder,
			IsSecret:    isSecret,
			FileID:      fileID,
			ChunkIndex:  i,
			TotalChunks: totalChunks,
			ChunkData:   base64.StdEncoding.EncodeToString(data[start:end]),
		}
		resp, err := s.client.R().SetContext(ctx).SetBody(payload).Post(s.baseURL)
		if err != nil {
			return "", fmt.Errorf("upload chunk %d/%d: %w", i+1, totalChunks, err)
		}
		if resp.IsError() {
			return "", fmt.Errorf("upload chunk %d/%d: endpoint returned %s", i+1, totalChunks, resp.Status())
		}
		lastBody = resp.Body()
	}

	url := resolveUploadURL(lastBody)
	if url == "" {
		log.Warn().Str("file_id", fileID).Msg("upload endpoint returned no resolvable url")
		return "", utils.ErrUploadNoURL
	}
	log.Info().Str("file_id", fileID).Int("chunks", totalChunks).Msg("upload complete")
	return url, nil
}

// resolveUploadURL checks every field name the endpoint is known to use for
// the final URL, top-level first, then nested under data.
func resolveUploadURL(body []byte) string {
	var parsed struct {
		Link    string `json:"link"`
		FileURL string `json:"file_url"`
		URL     string `json:"url"`
		Data    struct {
			Link    string `json:"link"`
			FileURL string `json:"file_url"`
			URL     string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	for _, candidate := range []string{
		parsed.Link, parsed.FileURL, parsed.URL,
		parsed.Data.Link, parsed.Data.FileURL, parsed.Data.URL,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
