// container.go: the container sum type the protocol navigates (§4.D)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

// ContainerKind tags which variant a Container currently holds.
type ContainerKind uint8

const (
	// ContainerVal holds a scalar Value leaf.
	ContainerVal ContainerKind = iota
	// ContainerMap holds a nested HashTrie of Shared<Container>.
	ContainerMap
)

// Container is `Val(Value) | Map(HashTrie of Shared<Container>)`: the tree
// the wire protocol navigates. Inner nodes are always Maps, leaves are
// always Vals.
type Container struct {
	kind ContainerKind
	val  Value
	trie *HashTrie
}

// NewValContainer wraps v as a leaf Container.
func NewValContainer(v Value) *Container {
	return &Container{kind: ContainerVal, val: v}
}

// NewMapContainer wraps trie as an inner-node Container.
func NewMapContainer(trie *HashTrie) *Container {
	return &Container{kind: ContainerMap, trie: trie}
}

// Kind reports which variant c holds.
func (c *Container) Kind() ContainerKind { return c.kind }

// Trie returns c's nested trie; nil if c is a Val.
func (c *Container) Trie() *HashTrie { return c.trie }

// AsValue returns a pointer to c's leaf Value for in-place atomic mutation,
// or ok=false if c is a Map (§4.D: "value() on a Map yields an error — used
// by the interpreter to detect an atomic op requested on a map").
func (c *Container) AsValue() (*Value, bool) {
	if c.kind != ContainerVal {
		return nil, false
	}
	return &c.val, true
}

// SetMap writes value into the slot located (or created) for key inside
// trie — create-or-replace, no regard for what was there before. This is
// the terminal-segment behavior of CMD_SET_KV (§4.F): "read a value
// payload, set_map it into the final slot."
func SetMap(trie *HashTrie, p ParticipantID, key []byte, value *Container) {
	slot := trie.Insert(key)
	slot.Write(p, value)
}

// CreateSetMap locates (or creates) the slot for key inside trie and
// ensures it holds a Map, installing one sized for initialSlots if it
// doesn't already. Concurrent callers racing to map-ify the same key all
// converge on a single winning Map reference (spec.md §8 property 4); a Val
// already at key is overwritten by the winning Map, but a Map already at
// key is never replaced by a later create_set_map (spec.md §4.D
// first-writer-wins rule).
func CreateSetMap(reg *Registry, p ParticipantID, trie *HashTrie, key []byte, initialSlots int) *Container {
	slot := trie.Insert(key)
	for {
		cur, ok := slot.Read(p)
		if ok && cur.Kind() == ContainerMap {
			return cur
		}

		var oldC *Container
		if ok {
			oldC = cur
		}
		candidate := NewMapContainer(NewHashTrie(reg, initialSlots, evolveSalt(trie.salt, reg)))

		installed, won := slot.CompareAndSwap(p, oldC, candidate)
		if won {
			return installed
		}
		if installed != nil && installed.Kind() == ContainerMap {
			return installed
		}
		// Lost the race to an unrelated Val write; retry from the top.
	}
}

// GetMap finds the Container stored at key inside trie without creating
// anything.
func GetMap(trie *HashTrie, p ParticipantID, key []byte) (*Container, bool) {
	slot, ok := trie.Find(key)
	if !ok {
		return nil, false
	}
	return slot.Read(p)
}

// GetMapSlot finds the Shared slot at key inside trie without creating
// anything, for callers (the interpreter's atomic-op path) that need the
// slot itself rather than a read of its current contents.
func GetMapSlot(trie *HashTrie, key []byte) (*Slot, bool) {
	return trie.Find(key)
}
