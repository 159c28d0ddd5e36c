// Package models defines the records exchanged with the technai REST backend
// and the query parameter sets of its list endpoints. The client never owns
// these records; it reads them and sends mutations.
package models
