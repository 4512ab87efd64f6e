// Package alert plays the new order alert on the terminal.
package alert

import (
	"context"
	"io"
	"strings"
	"sync"
)

const bel = "\a"

// Bell rings the terminal bell by writing BEL characters to out.
type Bell struct {
	mu    sync.Mutex
	out   io.Writer
	rings int
}

// NewBell rings rings times per alert, at least once.
func NewBell(out io.Writer, rings int) *Bell {
	return &Bell{out: out, rings: max(rings, 1)}
}

func (b *Bell) Alert(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := io.WriteString(b.out, strings.Repeat(bel, b.rings))
	return err
}
