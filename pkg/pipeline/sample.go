package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/ringstack/pkg/cache"
	"github.com/matzehuels/ringstack/pkg/resonator"
)

// Sample draws a stack from opts.Seed. It does not consult any cache.
func Sample(opts Options) (resonator.SampleResult, error) {
	return resonator.NewSampler(opts.Seed).Sample(opts.Count, opts.MaxSize)
}

// cachedSample is the cache encoding of a SampleResult.
type cachedSample struct {
	Stack     resonator.Stack `json:"stack"`
	Truncated bool            `json:"truncated"`
	Requested int             `json:"requested"`
}

func marshalSample(r resonator.SampleResult) ([]byte, error) {
	return json.Marshal(cachedSample{Stack: r.Stack, Truncated: r.Truncated, Requested: r.Requested})
}

func unmarshalSample(data []byte) (resonator.SampleResult, error) {
	var c cachedSample
	if err := json.Unmarshal(data, &c); err != nil {
		return resonator.SampleResult{}, err
	}
	if err := c.Stack.Validate(); err != nil {
		return resonator.SampleResult{}, err
	}
	return resonator.SampleResult{
		Stack:     c.Stack,
		Truncated: c.Truncated,
		Requested: c.Requested,
		Actual:    c.Stack.Len(),
	}, nil
}

// stackHash returns the content hash used in artifact cache keys.
func stackHash(stack resonator.Stack) string {
	data, _ := json.Marshal(stack)
	return cache.Hash(data)
}
