// Package client talks to the technai REST backend.
//
// # Overview
//
// The package provides:
//  1. Gateway, the authenticated request path. It attaches the bearer
//     token, and on a 401 for a request that carried one it refreshes the
//     token pair once (shared by every concurrent caller) and retries.
//  2. Decode and DecodeVoid, which unwrap the backend envelope
//     {code, messageCode, message, data} and turn failures into *APIError
//     with a user-facing message resolved by Messages.
//  3. Page, a single pagination shape that the three backend page formats
//     are normalized into.
//  4. HTTPClient, the endpoint bindings (AuthAPI, EmergingTechAPI,
//     BookmarkAPI, ChatbotAPI).
//
// # Error Handling
//
// Sentinels are matched with errors.Is: ErrUnavailable, ErrUnauthorized,
// ErrConflict, ErrSessionExpired, ErrNoRefreshToken, ErrRefreshFailed.
// Use errors.As with *APIError to read the backend code.
//
// # Concurrency & Contexts
//
// Gateway and HTTPClient are safe for concurrent use. Calls honor the
// caller's context; there is no per-request timeout.
package client
