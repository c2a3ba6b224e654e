// Package api implements the HTTP REST API and WebSocket server for
// Brauhaus Core.
//
// This package provides:
//   - REST endpoints for brewhouse status, the recipe library and brew
//     session control (start/stop, permission grants, state jumps)
//   - WebSocket hub broadcasting snapshots, state transitions and
//     permission changes in real time
//   - JWT authentication backed by the operator PIN
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//
// # Architecture
//
// The API server sits between operator interfaces and the brewhouse
// control loop. It never reaches into vessels or regulators: every
// command goes through the brewhouse's session operations, which land as
// flags consumed at tick boundaries. Reads come from Snapshot(), a
// point-in-time copy, so a slow client can never stretch a tick.
//
// # Security
//
// POST /auth/login exchanges the operator PIN for a short-lived HS256
// token; all mutating endpoints require it. The WebSocket endpoint
// authenticates via a token query parameter since browsers cannot set
// headers on WebSocket upgrades.
package api
