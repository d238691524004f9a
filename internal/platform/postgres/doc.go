// Package postgres contains the PostgreSQL implementations of the store
// interfaces. All timestamps are written as UTC into TIMESTAMPTZ columns
// and read back in UTC, so due-ness comparisons never mix timezones.
package postgres
