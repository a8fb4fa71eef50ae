// Package domain defines the kingdom document and its state-change model.
//
// A Kingdom is the shared mutable document the whole table plays against:
// resources, fame, unrest, the turn counter, and the authoritative current
// phase. Mutations flow through services that persist the document and
// append typed events to the kingdom's journal; last-writer-wins semantics
// apply to the document itself.
package domain
