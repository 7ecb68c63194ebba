// Package book implements the in-memory contact store and its birthday lookahead.
package book

import (
	"log/slog"

	"github.com/smileynet/addressbook/internal/contact"
)

// Book is a collection of contact records keyed by name.
// Iteration follows insertion order; overwriting a name keeps its original position.
// A Book is not safe for concurrent use.
type Book struct {
	records map[string]*contact.Record
	order   []string
	logger  *slog.Logger
}

// Option configures a Book.
type Option func(*Book)

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(l *slog.Logger) Option {
	return func(b *Book) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates an empty Book.
func New(opts ...Option) *Book {
	b := &Book{
		records: make(map[string]*contact.Record),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add stores r under r.Name, silently replacing any record with the same name.
func (b *Book) Add(r *contact.Record) {
	if _, ok := b.records[r.Name]; !ok {
		b.order = append(b.order, r.Name)
	}
	b.records[r.Name] = r
}

// Find returns the record stored under name.
// Returns (nil, false) when no such contact exists.
func (b *Book) Find(name string) (*contact.Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name. Absent names are ignored.
func (b *Book) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	return len(b.records)
}

// Records returns the contacts in iteration order.
func (b *Book) Records() []*contact.Record {
	out := make([]*contact.Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}
