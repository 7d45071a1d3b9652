package mocks

import "context"

type PrompterMock struct {
	PromptServerURLFunc func(ctx context.Context, seed string) (string, error)
	Calls               int
}

func (m *PrompterMock) PromptServerURL(ctx context.Context, seed string) (string, error) {
	m.Calls++
	if m.PromptServerURLFunc != nil {
		return m.PromptServerURLFunc(ctx, seed)
	}
	return "", nil
}
