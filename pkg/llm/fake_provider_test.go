package llm

import (
	"context"
	"errors"
)

type fakeReply struct {
	text string
	err  error
}

// fakeProvider answers each target by name and records the calls it received.
type fakeProvider struct {
	variants []Target
	replies  map[string]fakeReply
	calls    []Target
	prompts  []Prompt
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		variants: []Target{{Name: "v0"}, {Name: "v1"}, {Name: "v2"}},
		replies:  map[string]fakeReply{},
	}
}

func (f *fakeProvider) Name() string       { return "fake" }
func (f *fakeProvider) Variants() []Target { return f.variants }
func (f *fakeProvider) Legacy() Target     { return Target{Name: "legacy", Legacy: true} }

func (f *fakeProvider) Generate(ctx context.Context, apiKey string, target Target, prompt Prompt) (string, error) {
	f.calls = append(f.calls, target)
	f.prompts = append(f.prompts, prompt)
	reply, ok := f.replies[target.Name]
	if !ok {
		return "", errors.New("unavailable")
	}
	return reply.text, reply.err
}

func (f *fakeProvider) callNames() []string {
	names := make([]string, len(f.calls))
	for i, c := range f.calls {
		names[i] = c.Name
	}
	return names
}
