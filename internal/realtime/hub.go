package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Registry mapeia usuários autenticados para suas conexões vivas.
// Um usuário pode ter várias conexões simultâneas (abas), todas
// recebem os mesmos eventos.
type Registry interface {
	Register(c *Client)
	Deregister(c *Client)
	ConnectionCount(userID uint) int
}

type Hub struct {
	mu    sync.RWMutex
	conns map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[uint]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.conns[c.UserID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) Deregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[c.UserID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}

	delete(set, c)
	close(c.send)

	// última conexão do usuário → remove a entrada inteira
	if len(set) == 0 {
		delete(h.conns, c.UserID)
	}
}

func (h *Hub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// Publish entrega o evento para cada conexão viva de cada destinatário.
// Destinatário sem conexão é no-op. Conexão com fila cheia perde o
// evento (e registra em log) — nunca bloqueia o caller.
func (h *Hub) Publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Println("realtime: marshal event:", err)
		return
	}

	// envio sob RLock: Deregister (que fecha o canal) segura o Lock,
	// então nenhum canal fecha no meio do fan-out; o send nunca
	// bloqueia porque a fila é buffered com descarte
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, userID := range ev.Recipients {
		for c := range h.conns[userID] {
			select {
			case c.send <- payload:
			default:
				log.Printf("realtime: send queue full, dropping %s for conn %s", ev.Type, c.ID)
			}
		}
	}
}

var _ Registry = (*Hub)(nil)
var _ Notifier = (*Hub)(nil)
