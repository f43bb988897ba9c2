package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"church-app-go/internal/config"
	"github.com/disintegration/imaging"
)

const (
	maxPhotoSide = 800
	jpegQuality  = 85
)

var (
	ErrNotConfigured = errors.New("storage: not configured")
	ErrInvalidImage  = errors.New("storage: invalid image")
)

// PhotoStore normalizes photos and uploads them to Supabase storage.
type PhotoStore struct {
	baseURL    string
	serviceKey string
	bucket     string
	client     *http.Client
}

func NewPhotoStore(cfg config.SupabaseConfig) *PhotoStore {
	return &PhotoStore{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.StorageBucket,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *PhotoStore) Enabled() bool {
	return s.baseURL != "" && s.serviceKey != "" && s.bucket != ""
}

// Normalize decodes an image, fits it into 800x800 and re-encodes it as JPEG.
func Normalize(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrInvalidImage
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxPhotoSide || bounds.Dy() > maxPhotoSide {
		img = imaging.Fit(img, maxPhotoSide, maxPhotoSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UploadPersonPhoto stores the photo under <church>/<person>.jpg, replacing
// any previous one, and returns its public URL.
func (s *PhotoStore) UploadPersonPhoto(ctx context.Context, churchID, personID string, r io.Reader) (string, error) {
	if !s.Enabled() {
		return "", ErrNotConfigured
	}

	data, err := Normalize(r)
	if err != nil {
		return "", err
	}

	objectPath := url.PathEscape(churchID) + "/" + url.PathEscape(personID) + ".jpg"
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, url.PathEscape(s.bucket), objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("Cache-Control", "max-age=3600")
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage: upload status %d: %s", resp.StatusCode, body)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, url.PathEscape(s.bucket), objectPath)
	// Cache-bust so clients pick up a replaced photo.
	return publicURL + "?v=" + fmt.Sprint(time.Now().Unix()), nil
}
