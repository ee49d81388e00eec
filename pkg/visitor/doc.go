// Package visitor keeps per-visitor in-memory state keyed by an anonymous
// cookie. State lives in a github.com/hashicorp/golang-lru/v2/expirable
// cache: idle visitors expire, the least recently seen are dropped when the
// cache is full, and evicted values implementing Closer are closed.
//
// Nothing is persisted. A restart forgets every visitor.
package visitor
