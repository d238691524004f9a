// Package domain defines the core business entities of the vocabulary
// review system: vocabulary items shared across all learners, and the
// per-user review items that carry spaced repetition scheduling state.
package domain
