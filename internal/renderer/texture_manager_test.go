package renderer

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestDecodeImageChannels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(1, 0, color.Gray{Y: 200})

	opaque := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	translucent := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			opaque.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
			translucent.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
		}
	}

	tests := []struct {
		name     string
		img      image.Image
		channels int
	}{
		{"gray", gray, 1},
		{"opaque", opaque, 3},
		{"alpha", translucent, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, err := DecodeImage(writePNG(t, tt.img))
			require.NoError(t, err)
			assert.Equal(t, 3, px.Width)
			assert.Equal(t, 2, px.Height)
			assert.Equal(t, tt.channels, px.Channels)
			assert.Len(t, px.Data, 3*2*tt.channels)
		})
	}
}

func TestDecodeImagePixelLayout(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 4, G: 5, B: 6, A: 255})

	px, err := DecodeImage(writePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, px.Data)
}

func TestDecodeImageJPEGIsRGB(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	path := filepath.Join(t.TempDir(), "img.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())

	px, err := DecodeImage(path)
	require.NoError(t, err)
	assert.Equal(t, 3, px.Channels)
}

func TestDecodeImageErrors(t *testing.T) {
	_, err := DecodeImage(filepath.Join(t.TempDir(), "missing.png"))
	var decodeErr *TextureDecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	corrupt := filepath.Join(t.TempDir(), "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o644))
	_, err = DecodeImage(corrupt)
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, corrupt, decodeErr.Path)
}

func TestDecodeHDRFlipsVertically(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255}) // top row red
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255}) // bottom row blue

	px, err := DecodeHDR(writePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, 1, px.Width)
	assert.Equal(t, 2, px.Height)
	assert.Equal(t, []float32{0, 0, 1, 1, 0, 0}, px.Data)
}

func TestFormatForChannels(t *testing.T) {
	for channels, want := range map[int]int32{1: gl.RED, 3: gl.RGB, 4: gl.RGBA} {
		got, err := formatForChannels(channels)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := formatForChannels(2)
	assert.Error(t, err)
}

func TestTextureManagerFailedLoadReturnsZero(t *testing.T) {
	tm := NewTextureManager()
	missing := filepath.Join(t.TempDir(), "Water_001_COLOR.jpg")

	assert.Equal(t, uint32(0), tm.LoadTexture(missing))
	assert.Equal(t, uint32(0), tm.LoadHDR(missing))

	stats := tm.GetStats()
	assert.Equal(t, 2, stats.Failures)
	assert.Equal(t, 0, stats.ActiveTextures)

	// releasing the null handle is harmless
	assert.NotPanics(t, func() { tm.ReleaseTexture(0) })
}

func TestTextureManagerCachesByKind(t *testing.T) {
	tm := NewTextureManager()
	next := uint32(0)
	uploads := 0
	upload := func(string) (uint32, error) {
		uploads++
		next++
		return next, nil
	}

	first := tm.load("hdr:sky.hdr", "sky.hdr", upload)
	second := tm.load("hdr:sky.hdr", "sky.hdr", upload)
	other := tm.load("tex:sky.hdr", "sky.hdr", upload)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Equal(t, 2, uploads)

	stats := tm.GetStats()
	assert.Equal(t, 1, stats.CacheHits)
	assert.Equal(t, 2, stats.CacheMisses)
	assert.Equal(t, 2, stats.ActiveTextures)
	assert.Equal(t, 2, tm.textureRefCount[first])
}

func TestTextureManagerPrefetch(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	path := writePNG(t, img)
	missing := filepath.Join(t.TempDir(), "Water_001_NORM.jpg")

	tm := NewTextureManager()
	tm.Prefetch([]string{path, missing}, []string{path})

	res, ok := tm.takePrefetched(textureKey(path))
	require.True(t, ok)
	require.NoError(t, res.err)
	assert.Equal(t, 3, res.px.Channels)

	res, ok = tm.takePrefetched(hdrKey(path))
	require.True(t, ok)
	require.NoError(t, res.err)
	assert.Len(t, res.hdr.Data, 2*2*3)

	res, ok = tm.takePrefetched(textureKey(missing))
	require.True(t, ok)
	assert.Error(t, res.err)

	_, ok = tm.takePrefetched(textureKey(path))
	assert.False(t, ok, "prefetched pixels are consumed once")
}

func TestTextureManagerPrefetchedErrorFailsLoad(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "sky.hdr")
	tm := NewTextureManager()
	tm.Prefetch(nil, []string{missing})

	assert.Equal(t, uint32(0), tm.LoadHDR(missing))
	assert.Equal(t, 1, tm.GetStats().Failures)
	assert.Empty(t, tm.prefetched)
}

func TestTextureManagerReleaseKeepsSharedTexture(t *testing.T) {
	tm := NewTextureManager()
	upload := func(string) (uint32, error) { return 9, nil }

	sky := tm.load(hdrKey("sky.hdr"), "sky.hdr", upload)
	env := tm.load(hdrKey("sky.hdr"), "sky.hdr", upload)
	require.Equal(t, sky, env)
	require.Equal(t, 2, tm.textureRefCount[sky])

	tm.ReleaseTexture(sky)

	assert.Equal(t, 1, tm.textureRefCount[sky])
	assert.Equal(t, sky, tm.textureCache[hdrKey("sky.hdr")], "still cached while referenced")
	assert.Equal(t, 1, tm.GetStats().ActiveTextures)

	// a handle the manager never issued is ignored
	tm.ReleaseTexture(77)
	assert.Equal(t, 1, tm.textureRefCount[sky])
}
