// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between the divination engine, domain
// objects and repositories (defined in internal/store) to fulfill
// application features.
//
// Three services make up the layer:
//
//   - CastingService wraps the deterministic engine and owns the one impure
//     step: materializing the six draws for the coin and time methods. The
//     engine itself never reads a clock or draws randomness.
//
//   - ReadingService serves authenticated users. Casting runs synchronously
//     on the request path; persistence of the result goes through the event
//     emitter and task runner so a slow database never delays the response.
//
//   - UserService covers account management. Password change and account
//     deletion re-verify the caller's password and run inside a single
//     transaction.
//
// Services receive dependencies through constructor injection and translate
// store-level errors into service-level sentinels that the API layer maps to
// HTTP status codes. The layer depends on domain entities and repository
// interfaces, never on specific infrastructure implementations.
package service
