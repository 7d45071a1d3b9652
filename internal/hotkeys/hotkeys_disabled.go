//go:build !hotkey

package hotkeys

import (
	"context"
	"fmt"
)

func (s *Service) listen(ctx context.Context) error {
	return fmt.Errorf("%w: rebuild with -tags hotkey to use %q", ErrUnavailable, s.combo)
}
