package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"demo-credit/internal/core/ports"
	"demo-credit/pkg/apperror"
	"demo-credit/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// HeaderIdempotencyKey lets API clients retry money-moving calls safely.
	HeaderIdempotencyKey = "Idempotency-Key"
	// HeaderIdempotentReplay marks a response served from the cache.
	HeaderIdempotentReplay = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 255
	idempotencyLockTTL   = 30 * time.Second
)

// cachedResponse is what the idempotency cache stores per key.
type cachedResponse struct {
	Fingerprint string          `json:"fingerprint"`
	Status      int             `json:"status"`
	Body        json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored 2xx response when an authenticated client
// repeats a request with the same Idempotency-Key. Requests without the header
// pass through. Cache outages degrade to non-idempotent handling.
func Idempotency(cache ports.IdempotencyCache, ttl time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			response.Error(c, apperror.Validation("Idempotency-Key must be at most 255 characters"))
			c.Abort()
			return
		}

		userID, _ := UserID(c)
		cacheKey := fmt.Sprintf("%d:%s:%s:%s", userID, c.Request.Method, c.FullPath(), key)

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Error(c, apperror.Validation("cannot read request body"))
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		fingerprint := hex.EncodeToString(sum[:])

		ctx := c.Request.Context()
		cached, err := cache.Get(ctx, cacheKey)
		if err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("idempotency lookup failed, processing request")
			c.Next()
			return
		}
		if cached != nil {
			replay(c, cached, fingerprint, log)
			return
		}

		reserved, err := cache.Reserve(ctx, cacheKey, idempotencyLockTTL)
		if err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("idempotency reserve failed, processing request")
			c.Next()
			return
		}
		if !reserved {
			response.Error(c, apperror.ErrRequestInFlight())
			c.Abort()
			return
		}
		// Cleanup must outlive a client that hangs up mid-request.
		bg := context.WithoutCancel(ctx)
		defer func() {
			if err := cache.Release(bg, cacheKey); err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("failed to release idempotency lock")
			}
		}()

		// A request holding the key may have finished between the lookup and Reserve.
		cached, err = cache.Get(ctx, cacheKey)
		if err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("idempotency lookup failed, processing request")
		}
		if cached != nil {
			replay(c, cached, fingerprint, log)
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		payload, err := json.Marshal(cachedResponse{
			Fingerprint: fingerprint,
			Status:      status,
			Body:        json.RawMessage(rec.buf.Bytes()),
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to encode idempotent response")
			return
		}
		if err := cache.Set(bg, cacheKey, payload, ttl); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache idempotent response")
		}
	}
}

func replay(c *gin.Context, cached []byte, fingerprint string, log zerolog.Logger) {
	var stored cachedResponse
	if err := json.Unmarshal(cached, &stored); err != nil {
		log.Warn().Err(err).Msg("corrupt idempotency entry")
		response.Error(c, apperror.InternalError(err))
		c.Abort()
		return
	}
	if stored.Fingerprint != fingerprint {
		response.Error(c, apperror.ErrIdempotencyKeyReused())
		c.Abort()
		return
	}
	c.Header(HeaderIdempotentReplay, "true")
	c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
	c.Abort()
}
