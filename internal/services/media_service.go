package services

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const defaultMediaBaseURL = "https://api.cloudinary.com/v1_1"

// ErrMediaNotConfigured is returned by every call when credentials are missing.
var ErrMediaNotConfigured = errors.New("media storage is not configured")

// ErrMediaNotFound is returned when the CDN does not know the public id.
var ErrMediaNotFound = errors.New("media asset not found")

// MediaConfig captures the CDN account used for image hosting.
type MediaConfig struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// MediaMetadata is the free-text context attached to an asset.
type MediaMetadata struct {
	Alt      string `json:"alt"`
	Caption  string `json:"caption"`
	Category string `json:"category"`
}

// MediaAsset describes an uploaded image.
type MediaAsset struct {
	PublicID  string        `json:"publicId"`
	URL       string        `json:"url"`
	Format    string        `json:"format,omitempty"`
	Width     int           `json:"width,omitempty"`
	Height    int           `json:"height,omitempty"`
	Bytes     int64         `json:"bytes,omitempty"`
	CreatedAt string        `json:"createdAt,omitempty"`
	Metadata  MediaMetadata `json:"metadata"`
}

// MediaService talks to the image CDN over its REST API.
type MediaService struct {
	cfg    MediaConfig
	client *http.Client
	now    func() time.Time
}

// NewMediaService builds a MediaService.
func NewMediaService(cfg MediaConfig) *MediaService {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultMediaBaseURL
	}
	return &MediaService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
}

// Configured reports whether credentials are present.
func (s *MediaService) Configured() bool {
	return s != nil && s.cfg.CloudName != "" && s.cfg.APIKey != "" && s.cfg.APISecret != ""
}

// DefaultFolder is the folder used when the caller does not pick one.
func (s *MediaService) DefaultFolder() string {
	return s.cfg.Folder
}

type mediaResource struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int64  `json:"bytes"`
	CreatedAt string `json:"created_at"`
	Context   struct {
		Custom map[string]string `json:"custom"`
	} `json:"context"`
}

func (r mediaResource) asset() MediaAsset {
	return MediaAsset{
		PublicID:  r.PublicID,
		URL:       r.SecureURL,
		Format:    r.Format,
		Width:     r.Width,
		Height:    r.Height,
		Bytes:     r.Bytes,
		CreatedAt: r.CreatedAt,
		Metadata: MediaMetadata{
			Alt:      r.Context.Custom["alt"],
			Caption:  r.Context.Custom["caption"],
			Category: r.Context.Custom["category"],
		},
	}
}

type mediaError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload stores an image under folder (or the default folder) and returns its public id and URL.
func (s *MediaService) Upload(ctx context.Context, filename string, file io.Reader, folder string) (*MediaAsset, error) {
	if !s.Configured() {
		return nil, ErrMediaNotConfigured
	}
	if strings.TrimSpace(folder) == "" {
		folder = s.cfg.Folder
	}

	params := map[string]string{"timestamp": s.timestamp()}
	if folder != "" {
		params["folder"] = folder
	}
	s.sign(params)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range params {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write upload field: %w", err)
		}
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create upload part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint("image/upload"), &body)
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resource mediaResource
	if err := s.do(req, &resource); err != nil {
		return nil, err
	}
	asset := resource.asset()
	return &asset, nil
}

// Destroy deletes an asset by public id.
func (s *MediaService) Destroy(ctx context.Context, publicID string) error {
	if !s.Configured() {
		return ErrMediaNotConfigured
	}
	params := map[string]string{"public_id": publicID, "timestamp": s.timestamp()}

	var result struct {
		Result string `json:"result"`
	}
	if err := s.postForm(ctx, "image/destroy", params, &result); err != nil {
		return err
	}
	switch result.Result {
	case "ok":
		return nil
	case "not found":
		return ErrMediaNotFound
	default:
		return fmt.Errorf("media destroy returned %q", result.Result)
	}
}

// List returns the assets whose public id starts with prefix.
func (s *MediaService) List(ctx context.Context, prefix string) ([]MediaAsset, error) {
	if !s.Configured() {
		return nil, ErrMediaNotConfigured
	}

	query := url.Values{}
	query.Set("type", "upload")
	query.Set("context", "true")
	query.Set("max_results", "500")
	if prefix != "" {
		query.Set("prefix", prefix)
	}

	assets := make([]MediaAsset, 0)
	cursor := ""
	for {
		if cursor != "" {
			query.Set("next_cursor", cursor)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint("resources/image")+"?"+query.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("create list request: %w", err)
		}
		req.SetBasicAuth(s.cfg.APIKey, s.cfg.APISecret)

		var page struct {
			Resources  []mediaResource `json:"resources"`
			NextCursor string          `json:"next_cursor"`
		}
		if err := s.do(req, &page); err != nil {
			return nil, err
		}
		for _, r := range page.Resources {
			assets = append(assets, r.asset())
		}
		if page.NextCursor == "" {
			return assets, nil
		}
		cursor = page.NextCursor
	}
}

// Rename moves an asset to a new public id, which may include a new folder.
func (s *MediaService) Rename(ctx context.Context, fromPublicID, toPublicID string) (*MediaAsset, error) {
	if !s.Configured() {
		return nil, ErrMediaNotConfigured
	}
	params := map[string]string{
		"from_public_id": fromPublicID,
		"to_public_id":   toPublicID,
		"timestamp":      s.timestamp(),
	}

	var resource mediaResource
	if err := s.postForm(ctx, "image/rename", params, &resource); err != nil {
		return nil, err
	}
	asset := resource.asset()
	return &asset, nil
}

// SetMetadata replaces the alt text, caption and category attached to an asset.
func (s *MediaService) SetMetadata(ctx context.Context, publicID string, meta MediaMetadata) error {
	if !s.Configured() {
		return ErrMediaNotConfigured
	}
	params := map[string]string{
		"command":      "add",
		"context":      encodeContext(meta),
		"public_ids[]": publicID,
		"timestamp":    s.timestamp(),
	}

	var result struct {
		PublicIDs []string `json:"public_ids"`
	}
	if err := s.postForm(ctx, "image/context", params, &result); err != nil {
		return err
	}
	if len(result.PublicIDs) == 0 {
		return ErrMediaNotFound
	}
	return nil
}

func (s *MediaService) postForm(ctx context.Context, path string, params map[string]string, out any) error {
	s.sign(params)
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create media request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req, out)
}

func (s *MediaService) do(req *http.Request, out any) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute media request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read media response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrMediaNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr mediaError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("media request failed: status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("media request failed: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal media response: %w", err)
	}
	return nil
}

func (s *MediaService) endpoint(path string) string {
	return s.cfg.BaseURL + "/" + url.PathEscape(s.cfg.CloudName) + "/" + path
}

func (s *MediaService) timestamp() string {
	return strconv.FormatInt(s.now().Unix(), 10)
}

// sign adds api_key and signature to params. The signature is the SHA-1 of
// the sorted key=value pairs joined by '&' followed by the API secret.
func (s *MediaService) sign(params map[string]string) {
	params["signature"] = signParams(params, s.cfg.APISecret)
	params["api_key"] = s.cfg.APIKey
}

func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" || k == "file" || k == "api_key" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

func encodeContext(meta MediaMetadata) string {
	escape := strings.NewReplacer(`\`, `\\`, "|", `\|`, "=", `\=`)
	return strings.Join([]string{
		"alt=" + escape.Replace(meta.Alt),
		"caption=" + escape.Replace(meta.Caption),
		"category=" + escape.Replace(meta.Category),
	}, "|")
}
