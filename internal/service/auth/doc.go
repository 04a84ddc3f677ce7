// Package auth provides token minting/validation and password comparison.
// The token service is configured and constructed at startup but not
// mounted on any route; route authentication is out of scope for this
// service.
package auth
