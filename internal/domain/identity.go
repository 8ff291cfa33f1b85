// Package domain holds the oracle coordinator's entities: the identities it
// controls, the requests the ledger emits and the responses it submits.
package domain

import (
	"slices"
	"strings"
)

// Address is an opaque ledger account identifier controlled by the coordinator.
type Address string

func (a Address) String() string {
	return string(a)
}

// Normalize lowercases hex-style addresses so the same account spelled
// differently maps to one registry entry.
func (a Address) Normalize() Address {
	return Address(strings.ToLower(strings.TrimSpace(string(a))))
}

// IndexSet is the ordered, duplicate-free set of indexes the ledger assigned
// to one oracle at registration.
type IndexSet []uint8

// NewIndexSet drops duplicates while keeping the ledger's order.
func NewIndexSet(indexes ...uint8) IndexSet {
	set := make(IndexSet, 0, len(indexes))
	for _, idx := range indexes {
		if !slices.Contains(set, idx) {
			set = append(set, idx)
		}
	}
	return set
}

func (s IndexSet) Contains(index uint8) bool {
	return slices.Contains(s, index)
}

func (s IndexSet) Empty() bool {
	return len(s) == 0
}

// Identity is one oracle persona. Indexes stays empty until registration
// succeeds and never changes afterwards.
type Identity struct {
	Address Address  `json:"address"`
	Indexes IndexSet `json:"indexes"`
}

// Registered reports whether the identity may answer requests.
func (i Identity) Registered() bool {
	return !i.Indexes.Empty()
}

// Matches reports whether the identity should answer a request for index.
func (i Identity) Matches(index uint8) bool {
	return i.Registered() && i.Indexes.Contains(index)
}
