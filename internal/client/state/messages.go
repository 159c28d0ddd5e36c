package state

import (
	"errors"

	"github.com/dmitrijs2005/technai/internal/client/client"
)

// Toast texts.
const (
	MsgBookmarked          = "Bookmarked!"
	MsgAlreadyBookmarked   = "This content is already bookmarked."
	MsgBookmarkFailed      = "Failed to bookmark. Please try again."
	MsgBookmarkRemoved     = "Bookmark removed."
	MsgRemoveFailed        = "Failed to remove bookmark."
	MsgBookmarkUpdated     = "Bookmark updated."
	MsgUpdateFailed        = "Failed to update bookmark."
	MsgLoadBookmarkFailed  = "Failed to load bookmark."
	MsgBookmarkDeleted     = "Bookmark deleted. You can restore it from Trash."
	MsgDeleteFailed        = "Failed to delete bookmark."
	MsgBookmarkRestored    = "Bookmark restored."
	MsgRestoreFailed       = "Failed to restore bookmark."
	MsgHistoryFailed       = "Failed to load history."
	MsgAtTimestampFailed   = "Failed to load data at timestamp."
	MsgVersionRestored     = "Restored to selected version."
	MsgVersionFailed       = "Failed to restore version."
	MsgSendFailed          = "Failed to send message. Please try again."
	MsgConversationDeleted = "Conversation deleted."
	MsgConversationFailed  = "Failed to delete conversation."
)

// errorText prefers the resolved backend message over fallback.
func errorText(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallback
}

func isAPIError(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr)
}
