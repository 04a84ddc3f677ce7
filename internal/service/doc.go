// Package service implements the application's business operations,
// coordinating stores and transactions on behalf of the HTTP layer.
package service
