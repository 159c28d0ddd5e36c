// Package session keeps the signed-in user's token pair and display
// profile, persisted in the local metadata table so a restart resumes the
// session. Store implements client.TokenStore.
package session
