package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessAvatar_ResizesToWebP(t *testing.T) {
	out, err := ProcessAvatar(bytes.NewReader(pngBytes(t, 1024, 600)))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestProcessAvatar_KeepsSmallImages(t *testing.T) {
	out, err := ProcessAvatar(bytes.NewReader(pngBytes(t, 200, 300)))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestProcessAvatar_RejectsGarbage(t *testing.T) {
	_, err := ProcessAvatar(strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h pixels
// with no image data behind it.
func pngHeader(w, h uint32) []byte {
	var ihdr bytes.Buffer
	ihdr.WriteString("IHDR")
	_ = binary.Write(&ihdr, binary.BigEndian, w)
	_ = binary.Write(&ihdr, binary.BigEndian, h)
	ihdr.Write([]byte{8, 2, 0, 0, 0})

	var out bytes.Buffer
	out.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&out, binary.BigEndian, uint32(ihdr.Len()-4))
	out.Write(ihdr.Bytes())
	_ = binary.Write(&out, binary.BigEndian, crc32.ChecksumIEEE(ihdr.Bytes()))
	return out.Bytes()
}

func TestProcessAvatar_RejectsOversizedDimensions(t *testing.T) {
	_, err := ProcessAvatar(bytes.NewReader(pngHeader(50000, 50000)))
	require.ErrorIs(t, err, ErrInvalidImage)
	assert.Contains(t, err.Error(), "50000x50000")

	_, err = ProcessAvatar(bytes.NewReader(pngHeader(MaxSourceSide+1, 10)))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestAvatarStore_Upload(t *testing.T) {
	putter := &fakePutter{}
	store := NewAvatarStore(putter, "avatars-bucket", "https://cdn.example.com/")
	store.now = func() time.Time { return time.Unix(1700000000, 0) }

	url, err := store.Upload(context.Background(), 3, bytes.NewReader(pngBytes(t, 64, 64)))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/avatars/barber-3-1700000000.webp", url)
	assert.Equal(t, "avatars-bucket", *putter.in.Bucket)
	assert.Equal(t, "image/webp", *putter.in.ContentType)
	assert.NotEmpty(t, putter.body)
}
