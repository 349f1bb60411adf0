package walker

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sync"

	"github.com/npillmayer/styledom/dom"
)

// countMap counts per-node events, keyed by node identity. Bottom-up
// traversals use it to track how many children of a node have already
// been processed.
type countMap struct {
	sync.RWMutex
	counts map[dom.NodeID]uint32
}

func newCountMap() *countMap {
	return &countMap{counts: make(map[dom.NodeID]uint32)}
}

// get returns the current count for a node identity (zero if absent).
func (m *countMap) get(id dom.NodeID) uint32 {
	m.RLock()
	defer m.RUnlock()
	return m.counts[id]
}

// inc increments the count for a node identity and returns the new value.
func (m *countMap) inc(id dom.NodeID) uint32 {
	m.Lock()
	defer m.Unlock()
	m.counts[id]++
	return m.counts[id]
}
