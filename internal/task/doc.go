// Package task runs the service's background work: a database-backed runner
// with a worker pool, crash recovery, and a stuck-task monitor. Its one task
// type today is the reading archive, which writes a cast reading into the
// owner's history off the request path. Tasks are persisted before they are
// queued, so restarts replay anything unfinished.
package task
