// Package cart implements the owner-keyed cart store. Each owner key maps
// to an independent persisted line list; writing one key is never visible
// through another. Writes are last-write-wins, with a change signal so
// other open views of the same key can refresh.
package cart

import (
	"encoding/json"
	"fmt"
)

const GuestKey = "cart"

type Line struct {
	ProductID uint `json:"id"`
	Qty       uint `json:"qty"`
}

// OwnerKey derives the storage namespace for a cart. Authenticated owners
// get a per-account key; everyone else shares the guest key. Logging in or
// out switches keys, it never merges lists.
func OwnerKey(userID uint) string {
	if userID == 0 {
		return GuestKey
	}
	return fmt.Sprintf("cart:%d", userID)
}

type Store struct {
	kv  KV
	hub *hub
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv, hub: newHub()}
}

// Read returns the persisted lines for ownerKey. A missing or malformed
// payload reads as an empty cart, never an error; entries without a valid
// product id or quantity are dropped.
func (s *Store) Read(ownerKey string) ([]Line, error) {
	raw, ok, err := s.kv.Get(ownerKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Line{}, nil
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return []Line{}, nil
	}

	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ProductID == 0 || l.Qty == 0 {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// Write replaces the whole list under ownerKey and notifies subscribers.
func (s *Store) Write(lines []Line, ownerKey string) error {
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ownerKey, raw); err != nil {
		return err
	}
	s.hub.notify(ownerKey)
	return nil
}

// Subscribe returns a channel that receives a signal after every write to
// ownerKey, and a cancel func that releases the subscription.
func (s *Store) Subscribe(ownerKey string) (<-chan struct{}, func()) {
	return s.hub.subscribe(ownerKey)
}

// The mutation helpers below are pure: they return a new list and leave
// the input untouched. Callers persist the result with Write.

func Add(lines []Line, productID, qty uint) []Line {
	if qty < 1 {
		qty = 1
	}
	out := clone(lines)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Qty += qty
			return out
		}
	}
	return append(out, Line{ProductID: productID, Qty: qty})
}

func Increment(lines []Line, productID uint) []Line {
	out := clone(lines)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Qty++
		}
	}
	return out
}

// Decrement floors at quantity 1. Removing a line entirely is Remove's job.
func Decrement(lines []Line, productID uint) []Line {
	out := clone(lines)
	for i := range out {
		if out[i].ProductID == productID && out[i].Qty > 1 {
			out[i].Qty--
		}
	}
	return out
}

func Remove(lines []Line, productID uint) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	return out
}

func Clear([]Line) []Line {
	return []Line{}
}

func clone(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
