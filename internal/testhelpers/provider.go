package testhelpers

import (
	"context"
	"sync"

	"github.com/pageza/menuqr/backend/internal/provider"
)

// FakeProvider is a scripted provider.TextProvider. Each call returns the
// next response in order, repeating the last one when the script runs out.
type FakeProvider struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Requests  []provider.Request
}

func NewFakeProvider(responses ...string) *FakeProvider {
	return &FakeProvider{Responses: responses}
}

func (f *FakeProvider) Complete(_ context.Context, req provider.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Responses) == 0 {
		return "", nil
	}
	i := len(f.Requests) - 1
	if i >= len(f.Responses) {
		i = len(f.Responses) - 1
	}
	return f.Responses[i], nil
}

// LastRequest returns the most recent request, or the zero value.
func (f *FakeProvider) LastRequest() provider.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Requests) == 0 {
		return provider.Request{}
	}
	return f.Requests[len(f.Requests)-1]
}

func (f *FakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}
