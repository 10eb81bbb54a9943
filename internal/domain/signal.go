package domain

// PostEvent is one public post delivered by the signal feed.
type PostEvent struct {
	// ID is the post identifier; the feed does not deduplicate deliveries.
	ID string
	// AuthorID is the posting account's identifier.
	AuthorID string
	// Text is the raw post text.
	Text string
	// IsReply reports whether the post replies to another post.
	IsReply bool
}
