package ws

import "sync/atomic"

// Relay forwards emits to a hub attached at runtime. Until Attach is called,
// and after Detach, every emit is silently dropped.
type Relay struct {
	hub atomic.Pointer[Hub]
}

func NewRelay() *Relay {
	return &Relay{}
}

func (r *Relay) Attach(h *Hub) {
	if r == nil {
		return
	}
	r.hub.Store(h)
}

func (r *Relay) Detach() {
	if r == nil {
		return
	}
	r.hub.Store(nil)
}

func (r *Relay) EmitToRoom(room, event string, payload any) {
	if r == nil {
		return
	}
	if h := r.hub.Load(); h != nil {
		h.EmitToRoom(room, event, payload)
	}
}

func (r *Relay) EmitToAll(event string, payload any) {
	if r == nil {
		return
	}
	if h := r.hub.Load(); h != nil {
		h.EmitToAll(event, payload)
	}
}
