package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
)

const thumbnailSize = 512

// CoverStore persists generated cover images and their thumbnails in
// S3-compatible object storage.
type CoverStore struct {
	s3Client *s3.Client
	cfg      *Config
	http     *http.Client
}

// StoredCover describes where a persisted cover lives.
type StoredCover struct {
	ObjectKey    string
	ThumbnailKey string
	PublicURL    string
}

// NewCoverStore creates a cover store from the given configuration.
func NewCoverStore(cfg *Config) (*CoverStore, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("object storage is not configured")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	return &CoverStore{
		s3Client: s3Client,
		cfg:      cfg,
		http:     &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// StoreFromURL downloads a generated image, writes the original and a
// thumbnail to the bucket, and returns the object keys.
func (cs *CoverStore) StoreFromURL(ctx context.Context, userID, coverID, srcURL string) (*StoredCover, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := cs.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading generated image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading generated image: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading generated image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding generated image: %w", err)
	}

	objectKey := fmt.Sprintf("covers/%s/%s.png", userID, coverID)
	thumbKey := fmt.Sprintf("covers/%s/%s_thumb.png", userID, coverID)

	if err := cs.putPNG(ctx, objectKey, img); err != nil {
		return nil, err
	}
	if err := cs.putPNG(ctx, thumbKey, Thumbnail(img)); err != nil {
		return nil, err
	}

	log.Infof("[CoverStore] stored cover s3://%s/%s", cs.cfg.Bucket, objectKey)

	return &StoredCover{
		ObjectKey:    objectKey,
		ThumbnailKey: thumbKey,
		PublicURL:    cs.PublicURL(objectKey),
	}, nil
}

func (cs *CoverStore) putPNG(ctx context.Context, key string, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	_, err := cs.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(cs.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(int64(buf.Len())),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

// Delete removes a stored cover and its thumbnail.
func (cs *CoverStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if key == "" {
			continue
		}
		_, err := cs.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(cs.cfg.Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return fmt.Errorf("deleting %s: %w", key, err)
		}
	}
	return nil
}

// PublicURL maps an object key to its public address.
func (cs *CoverStore) PublicURL(key string) string {
	if cs.cfg.PublicBaseURL != "" {
		return cs.cfg.PublicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", cs.cfg.Bucket, cs.cfg.Region, key)
}

// Thumbnail downscales a cover to fit the thumbnail box, preserving aspect
// ratio. Images already smaller than the box pass through unchanged.
func Thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= thumbnailSize && b.Dy() <= thumbnailSize {
		return img
	}
	return imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
}
