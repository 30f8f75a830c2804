// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal application services, translating HTTP concerns to
// business operations.
//
// Casting and share endpoints are public; reading endpoints require a
// JWT-authenticated user and are scoped to that user's own readings.
package api
