package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// DefaultEchoWindow is how far apart a local message and its server echo may be
const DefaultEchoWindow = 2 * time.Minute

// Deduplicator reconciles optimistic local messages with server history
type Deduplicator struct {
	window time.Duration
}

// NewDeduplicator creates a Deduplicator matching echoes within window
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = DefaultEchoWindow
	}
	return &Deduplicator{window: window}
}

// Reconcile returns the server history followed by the local messages the
// server has not echoed back. A local message is echoed when a server message
// with the same role and text was created within the window. Each server
// message confirms at most one local message.
func (d *Deduplicator) Reconcile(server, current []ChatMessage) []ChatMessage {
	byHash := make(map[string][]int)
	for i, m := range server {
		h := d.hashMessageContent(m)
		byHash[h] = append(byHash[h], i)
	}
	used := make(map[int]bool)

	out := make([]ChatMessage, 0, len(server)+len(current))
	out = append(out, server...)

	for _, local := range current {
		if !local.IsLocal() {
			continue
		}
		if d.claimEcho(local, server, byHash[d.hashMessageContent(local)], used) {
			continue
		}
		out = append(out, local)
	}
	return out
}

func (d *Deduplicator) claimEcho(local ChatMessage, server []ChatMessage, candidates []int, used map[int]bool) bool {
	for _, i := range candidates {
		if used[i] {
			continue
		}
		gap := server[i].CreatedAt().Sub(local.CreatedAt())
		if gap < 0 {
			gap = -gap
		}
		if gap <= d.window {
			used[i] = true
			return true
		}
	}
	return false
}

// hashMessageContent hashes role and displayed text
func (d *Deduplicator) hashMessageContent(m ChatMessage) string {
	h := sha256.New()
	h.Write([]byte(m.Info.Role))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(m.Content())))
	return hex.EncodeToString(h.Sum(nil))
}
