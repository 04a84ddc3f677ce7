// Package mocks provides test doubles for the store and service
// interfaces. Each mock supports per-method function overrides with a
// usable in-memory default, so most tests only configure the calls they
// care about.
package mocks
