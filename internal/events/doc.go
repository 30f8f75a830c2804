// Package events decouples the services that request background work from
// the machinery that runs it. A service emits a TaskRequestEvent naming a
// task type and carrying a JSON payload; registered handlers turn those
// events into persisted tasks. The reading archive flow is the main user:
// casting a reading for an authenticated account emits an event instead of
// blocking the request on the database write.
package events
