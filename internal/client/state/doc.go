// Package state holds the client-side view state the CLI renders: the
// paginated list controllers, the optimistic bookmark toggle, the chat
// transcript and the toast queue.
//
// Controllers fetch through the client package and never hold locks while
// a request is in flight. List fetch failures degrade to an empty page;
// mutation failures roll back local state and push an error toast.
package state
