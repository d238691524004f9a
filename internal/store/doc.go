// Package store defines the persistence contracts consumed by the review
// scheduler, together with shared store errors and transaction helpers.
// Concrete implementations live in internal/platform/postgres.
package store
