// Package realtime entrega notificações do painel em tempo real (SSE).
package realtime

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/barberpro/internal/models"
)

const Channel = "barberpro:notifications"

// Hub distribui notificações recém-criadas. O canal devolvido por Subscribe
// é fechado quando ctx termina.
type Hub interface {
	Publish(ctx context.Context, n models.Notification) error
	Subscribe(ctx context.Context) (<-chan models.Notification, error)
}

// ======================================================
// MEMORY
// ======================================================

// MemoryHub atende uma única instância da API (sem Redis).
type MemoryHub struct {
	mu   sync.Mutex
	subs map[chan models.Notification]struct{}
}

func NewMemoryHub() *MemoryHub {
	return &MemoryHub{subs: make(map[chan models.Notification]struct{})}
}

// Publish não bloqueia: assinante lento perde a mensagem e recarrega a lista.
func (h *MemoryHub) Publish(_ context.Context, n models.Notification) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
	return nil
}

func (h *MemoryHub) Subscribe(ctx context.Context) (<-chan models.Notification, error) {
	ch := make(chan models.Notification, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch)
		h.mu.Unlock()
	}()

	return ch, nil
}

func (h *MemoryHub) subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
