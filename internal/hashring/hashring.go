/*
Package hashring is a consistent hashing ring with virtual nodes, used by the shard router
to pick the database shard that owns a short ID.

The ring is built once at startup with Add and then only read with Get. Add is not safe to
call concurrently with anything else; Get is safe for any number of concurrent callers once
building is done.
*/
package hashring

import (
	"sort"
	"strconv"
)

// VirtualNodeSeparator joins an endpoint id and a virtual node index into the label that
// gets hashed, e.g. "2#VN17". Endpoint ids must not contain it.
const VirtualNodeSeparator = "#VN"

type position[T any] struct {
	hash   uint64
	handle T
}

// Ring maps 64-bit hash positions to endpoint handles.
type Ring[T any] struct {
	replicationFactor int
	positions         []position[T] // ascending by hash, hashes unique
}

// New will create an empty ring that places replicationFactor virtual nodes per endpoint.
func New[T any](replicationFactor int) (*Ring[T], error) {
	if replicationFactor < 1 {
		return nil, ErrInvalidConfiguration
	}
	return &Ring[T]{replicationFactor: replicationFactor}, nil
}

// VirtualNodeLabel returns the label hashed for the i-th virtual node of an endpoint.
func VirtualNodeLabel(endpointID string, i int) string {
	return endpointID + VirtualNodeSeparator + strconv.Itoa(i)
}

// Add places the endpoint's virtual nodes on the ring. When a position is already taken
// the new handle replaces the old one.
func (r *Ring[T]) Add(endpointID string, handle T) {
	for i := 0; i < r.replicationFactor; i++ {
		r.insert(PlacementHash(VirtualNodeLabel(endpointID, i)), handle)
	}
}

func (r *Ring[T]) insert(hash uint64, handle T) {
	idx := r.search(hash)
	if idx < len(r.positions) && r.positions[idx].hash == hash {
		r.positions[idx].handle = handle
		return
	}
	r.positions = append(r.positions, position[T]{})
	copy(r.positions[idx+1:], r.positions[idx:])
	r.positions[idx] = position[T]{hash: hash, handle: handle}
}

// Get returns the handle owning key: the first position clockwise from LookupHash(key),
// wrapping to the lowest position past the end of the ring.
func (r *Ring[T]) Get(key string) (T, error) {
	if len(r.positions) == 0 {
		var zero T
		return zero, ErrEmptyRing
	}
	idx := r.search(LookupHash(key))
	if idx == len(r.positions) {
		idx = 0
	}
	return r.positions[idx].handle, nil
}

// search returns the index of the first position with hash >= h.
func (r *Ring[T]) search(h uint64) int {
	return sort.Search(len(r.positions), func(i int) bool {
		return r.positions[i].hash >= h
	})
}

// Len returns the number of positions on the ring.
func (r *Ring[T]) Len() int {
	return len(r.positions)
}

// ReplicationFactor returns the number of virtual nodes placed per endpoint.
func (r *Ring[T]) ReplicationFactor() int {
	return r.replicationFactor
}
