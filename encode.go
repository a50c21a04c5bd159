package qrsvg

import (
	"math"

	"github.com/Mictilt/qrsvg/matrix"
)

// encodeKey is the identity of an encoded symbol. Size is stored as its bit
// pattern so that NaN keys compare equal to themselves.
type encodeKey struct {
	payload string
	size    uint64
	level   matrix.Level
}

func newEncodeKey(payload string, size float64, level matrix.Level) encodeKey {
	return encodeKey{payload: payload, size: math.Float64bits(size), level: level}
}

// cacheEntry is the single memoised encode of a Renderer.
type cacheEntry struct {
	key    encodeKey
	result encodeResult
	// notified is set once a failure has been handed to an error callback.
	notified bool
}

// Encode returns the symbol for (payload, size, level), reusing the cached
// one when the tuple did not change. Failures are returned as *EncodeError
// and are cached as well.
func (r *Renderer) Encode(payload string, size float64, level matrix.Level) (Symbol, error) {
	res, _ := r.resolve(newEncodeKey(payload, size, level), false)
	if !res.Ok() {
		return Symbol{}, res.err
	}
	return res.symbol, nil
}

// Reset drops the cached symbol.
func (r *Renderer) Reset() {
	r.mu.Lock()
	r.cache = nil
	r.mu.Unlock()
}

// resolve returns the cached or freshly encoded result for key. With
// claimNotice set, notify reports whether the caller is the first to
// observe this cached failure and so must hand it to its error callback.
func (r *Renderer) resolve(key encodeKey, claimNotice bool) (res encodeResult, notify bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache != nil && r.cache.key == key {
		r.logger.Debug("symbol cache hit", "payload", key.payload, "level", key.level)
	} else {
		r.logger.Debug("symbol cache miss", "payload", key.payload, "level", key.level)
		r.cache = &cacheEntry{key: key, result: r.encode(key)}
	}

	res = r.cache.result
	if !res.Ok() && claimNotice && !r.cache.notified {
		r.cache.notified = true
		notify = true
	}
	return res, notify
}

// encode runs the matrix encoder and the path compressor once.
func (r *Renderer) encode(key encodeKey) encodeResult {
	size := math.Float64frombits(key.size)
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return failed(newEncodeError(key.payload, key.level, ErrInvalidSize))
	}
	if key.payload == "" {
		return failed(newEncodeError(key.payload, key.level, matrix.ErrEmptyPayload))
	}

	grid, err := r.encoder.Encode(key.payload, key.level)
	if err != nil {
		r.logger.Warn("encode failed", "level", key.level, "err", err)
		return failed(newEncodeError(key.payload, key.level, err))
	}

	c := r.compressor.Compress(grid, size)
	return ok(Symbol{
		Path:     c.Path,
		CellSize: c.CellSize,
		Modules:  grid.Size(),
	})
}
