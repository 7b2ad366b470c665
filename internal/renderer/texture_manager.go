package renderer

import (
	"AsylumOcean/internal/logger"
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	Failures       int
	ActiveTextures int
}

// TextureManager loads textures once per path and hands out the same GPU
// handle on every later request. A failed load yields handle 0, which GL
// treats as "no texture"; the failure is logged, never returned.
type TextureManager struct {
	textureCache    map[string]uint32 // cache key -> OpenGL texture ID
	textureRefCount map[uint32]int    // texture ID -> reference count
	texturePaths    map[uint32]string // texture ID -> cache key (for debugging)
	mu              sync.RWMutex
	stats           TextureStats

	prefetchMu sync.Mutex
	prefetched map[string]decodeResult // cache key -> decoded pixels, consumed by the first load
}

type decodeResult struct {
	px  *Pixels
	hdr *HDRPixels
	err error
}

func NewTextureManager() *TextureManager {
	return &TextureManager{
		textureCache:    make(map[string]uint32),
		textureRefCount: make(map[uint32]int),
		texturePaths:    make(map[uint32]string),
		prefetched:      make(map[string]decodeResult),
	}
}

// Prefetch decodes the given files on a worker pool so that the later
// LoadTexture and LoadHDR calls on the GL thread only upload. Decode errors
// are kept and reported by the load that consumes them.
func (tm *TextureManager) Prefetch(textures, hdrs []string) {
	pool := pond.NewPool(runtime.NumCPU())
	for _, path := range textures {
		path := path
		pool.Submit(func() {
			px, err := DecodeImage(path)
			tm.storePrefetched(textureKey(path), decodeResult{px: px, err: err})
		})
	}
	for _, path := range hdrs {
		path := path
		pool.Submit(func() {
			px, err := DecodeHDR(path)
			tm.storePrefetched(hdrKey(path), decodeResult{hdr: px, err: err})
		})
	}
	pool.StopAndWait()

	logger.Log.Debug("Textures decoded",
		zap.Int("textures", len(textures)),
		zap.Int("hdr", len(hdrs)))
}

func (tm *TextureManager) storePrefetched(key string, res decodeResult) {
	tm.prefetchMu.Lock()
	tm.prefetched[key] = res
	tm.prefetchMu.Unlock()
}

func (tm *TextureManager) takePrefetched(key string) (decodeResult, bool) {
	tm.prefetchMu.Lock()
	defer tm.prefetchMu.Unlock()
	res, ok := tm.prefetched[key]
	if ok {
		delete(tm.prefetched, key)
	}
	return res, ok
}

func textureKey(path string) string { return "tex:" + path }
func hdrKey(path string) string     { return "hdr:" + path }

// LoadTexture uploads an 8-bit image with mipmaps, repeat wrapping,
// trilinear minification and linear magnification.
func (tm *TextureManager) LoadTexture(filePath string) uint32 {
	key := textureKey(filePath)
	return tm.load(key, filePath, func(path string) (uint32, error) {
		px, err := tm.decodeImage(key, path)
		if err != nil {
			return 0, err
		}
		return uploadTexture(path, px)
	})
}

// LoadHDR uploads a vertically flipped RGB16F environment map without
// mipmaps, edge-clamped, linear filtered.
func (tm *TextureManager) LoadHDR(filePath string) uint32 {
	key := hdrKey(filePath)
	return tm.load(key, filePath, func(path string) (uint32, error) {
		px, err := tm.decodeHDR(key, path)
		if err != nil {
			return 0, err
		}
		return uploadHDR(px)
	})
}

func (tm *TextureManager) decodeImage(key, path string) (*Pixels, error) {
	if res, ok := tm.takePrefetched(key); ok {
		return res.px, res.err
	}
	return DecodeImage(path)
}

func (tm *TextureManager) decodeHDR(key, path string) (*HDRPixels, error) {
	if res, ok := tm.takePrefetched(key); ok {
		return res.hdr, res.err
	}
	return DecodeHDR(path)
}

func (tm *TextureManager) load(key, filePath string, upload func(string) (uint32, error)) uint32 {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if textureID, exists := tm.textureCache[key]; exists {
		tm.textureRefCount[textureID]++
		tm.stats.CacheHits++

		logger.Log.Debug("Texture cache hit",
			zap.String("path", filePath),
			zap.Uint32("textureID", textureID),
			zap.Int("refCount", tm.textureRefCount[textureID]))
		return textureID
	}

	tm.stats.CacheMisses++
	textureID, err := upload(filePath)
	if err != nil {
		tm.stats.Failures++
		logger.Log.Error("Texture failed to load", zap.String("path", filePath), zap.Error(err))
		return 0
	}

	tm.textureCache[key] = textureID
	tm.textureRefCount[textureID] = 1
	tm.texturePaths[textureID] = key
	tm.stats.TotalTextures++
	tm.stats.ActiveTextures++

	logger.Log.Info("Texture loaded and cached",
		zap.String("path", filePath),
		zap.Uint32("textureID", textureID))
	return textureID
}

func uploadTexture(filePath string, px *Pixels) (uint32, error) {
	format, err := formatForChannels(px.Channels)
	if err != nil {
		return 0, &TextureDecodeError{Path: filePath, Err: err}
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	// RGB and RED rows are not 4-byte aligned in general
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, format, int32(px.Width), int32(px.Height), 0, uint32(format), gl.UNSIGNED_BYTE, gl.Ptr(px.Data))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	return textureID, nil
}

func uploadHDR(px *HDRPixels) (uint32, error) {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB16F, int32(px.Width), int32(px.Height), 0, gl.RGB, gl.FLOAT, gl.Ptr(px.Data))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	return textureID, nil
}

// ReleaseTexture decrements reference count and frees texture if count reaches 0
func (tm *TextureManager) ReleaseTexture(textureID uint32) {
	if textureID == 0 {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	refCount, exists := tm.textureRefCount[textureID]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture",
			zap.Uint32("textureID", textureID))
		return
	}

	refCount--
	tm.textureRefCount[textureID] = refCount
	if refCount > 0 {
		return
	}

	gl.DeleteTextures(1, &textureID)
	key := tm.texturePaths[textureID]
	delete(tm.textureCache, key)
	delete(tm.textureRefCount, textureID)
	delete(tm.texturePaths, textureID)
	tm.stats.ActiveTextures--

	logger.Log.Info("Texture freed",
		zap.Uint32("textureID", textureID),
		zap.String("key", key))
}

// GetStats returns current texture manager statistics
func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	stats := tm.stats
	stats.ActiveTextures = len(tm.textureRefCount)
	return stats
}

// LogStats logs current texture statistics
func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	logger.Log.Info("Texture Manager Stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("activeTextures", stats.ActiveTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses),
		zap.Int("failures", stats.Failures))
}

// Clear releases all textures regardless of reference counts.
func (tm *TextureManager) Clear() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for textureID := range tm.textureRefCount {
		gl.DeleteTextures(1, &textureID)
	}

	tm.textureCache = make(map[string]uint32)
	tm.textureRefCount = make(map[uint32]int)
	tm.texturePaths = make(map[uint32]string)
	tm.stats.ActiveTextures = 0

	logger.Log.Info("Texture manager cleared")
}
