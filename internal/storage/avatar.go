// Package storage keeps barber avatars in an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
)

const (
	MaxAvatarSide  = 512
	MaxSourceSide  = 8000
	MaxUploadBytes = 5 << 20
	webpQuality    = 80
)

var ErrInvalidImage = errors.New("invalid image")

type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type AvatarStore struct {
	client    ObjectPutter
	bucket    string
	publicURL string
	now       func() time.Time
}

func NewAvatarStore(client ObjectPutter, bucket, publicURL string) *AvatarStore {
	return &AvatarStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}
}

// NewS3Client builds a path-style client so MinIO and R2 endpoints work too.
func NewS3Client(cfg *config.Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.S3Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
	}
	return s3.New(opts)
}

// Upload stores the processed avatar and returns its public URL.
func (s *AvatarStore) Upload(ctx context.Context, barberID uint, r io.Reader) (string, error) {
	data, err := ProcessAvatar(io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/barber-%d-%d.webp", barberID, s.now().Unix())
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=31536000"),
	}); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return s.publicURL + "/" + key, nil
}

// ProcessAvatar decodes a JPEG, PNG or WebP image, shrinks it so neither
// side exceeds MaxAvatarSide and re-encodes it as WebP. Sources declaring
// a side above MaxSourceSide are rejected before any pixel is decoded.
func ProcessAvatar(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxSourceSide || cfg.Height > MaxSourceSide {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d px", ErrInvalidImage, cfg.Width, cfg.Height, MaxSourceSide)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	img := resize(src, MaxAvatarSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func resize(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
