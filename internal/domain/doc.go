// Package domain defines the core business entities and their validation
// rules, independent of persistence and transport concerns.
package domain
