package definition

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kbukum/seqkit/logger"
)

// ResultCache stores run results by definition fingerprint.
// Load returns (nil, nil) on a miss.
type ResultCache interface {
	Load(ctx context.Context, key string) (*Result, error)
	Save(ctx context.Context, key string, res *Result, ttl time.Duration) error
}

// WithCache serves repeated runs of the same definition from c. Entries
// expire after ttl; 0 keeps them until evicted.
func WithCache(c ResultCache, ttl time.Duration) RunnerOption {
	return func(r *Runner) {
		r.cache = c
		r.cacheTTL = ttl
	}
}

// Fingerprint identifies the output of def when run under maxElements.
// Name and description do not take part, so renamed copies share entries.
// Definitions that cannot be encoded, such as ones holding NaN, have no
// fingerprint and must not be cached.
func Fingerprint(def *Definition, maxElements int) (string, error) {
	data, err := json.Marshal(struct {
		Source      Source      `json:"source"`
		Steps       []Step      `json:"steps"`
		Collect     CollectKind `json:"collect"`
		MaxElements int         `json:"max_elements"`
	}{def.Source, def.Steps, def.CollectOrDefault(), maxElements})
	if err != nil {
		return "", fmt.Errorf("fingerprint %q: %w", def.Name, err)
	}
	sum := sha256.Sum256(data)
	return "run:" + hex.EncodeToString(sum[:]), nil
}

// cached returns the stored result for key, or nil. Cache failures are
// logged and treated as misses.
func (r *Runner) cached(ctx context.Context, log *logger.Logger, key string) *Result {
	res, err := r.cache.Load(ctx, key)
	if err != nil {
		log.Warn("result cache load failed", logger.MergeWithError(logger.Fields("key", key), err))
		return nil
	}
	return res
}
