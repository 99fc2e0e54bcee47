// Package cache stores rendered artifacts and sampled stacks between runs.
//
// A [Cache] is a plain byte store with expiry. Three backends ship with the
// package: [FileCache] for the CLI, [RedisCache] for shared deployments of
// the HTTP API, and [NullCache] when caching is disabled.
//
// Keys come from a [Keyer] so that every caller derives the same key for the
// same inputs. [DefaultKeyer] hashes the inputs; [ScopedKeyer] prefixes
// another keyer to isolate tenants sharing one backend.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default expiry per entry kind. Sampled stacks and artifacts are pure
// functions of their keys, so long TTLs only bound storage.
const (
	TTLStack    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero keeps the entry until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// StackKey identifies a sampled stack.
	StackKey(opts StackKeyOpts) string
	// ArtifactKey identifies one rendered format of a stack.
	ArtifactKey(stackHash string, opts ArtifactKeyOpts) string
}

// StackKeyOpts are the sampler inputs that determine a stack.
type StackKeyOpts struct {
	Seed    uint64 `json:"seed"`
	Count   int    `json:"count"`
	MaxSize int    `json:"max_size"`
}

// ArtifactKeyOpts are the render inputs that determine an artifact.
type ArtifactKeyOpts struct {
	Format       string `json:"format"`
	CanvasSize   int    `json:"canvas_size"`
	Layer        int    `json:"layer"`
	PerResonator bool   `json:"per_resonator"`
	Scale        int    `json:"scale,omitempty"`
	// Seed is set for formats that embed the sampling seed; nil for
	// explicit stacks and seedless formats.
	Seed *uint64 `json:"seed,omitempty"`
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// StackKey returns "stack:<hash>".
func (DefaultKeyer) StackKey(opts StackKeyOpts) string {
	return hashKey("stack", opts)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(stackHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), stackHash, opts)
}

var _ Keyer = DefaultKeyer{}
