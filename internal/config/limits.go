package config

const (
	// FeedWindowSize is how many filtered records the feed reveals at a time.
	// "Load more" grows the window by the same amount.
	FeedWindowSize = 12

	// ScrollPageSize is the server page size for the infinite-scroll feed.
	ScrollPageSize = 20

	// SearchLimit caps backend search results.
	SearchLimit = 100

	// MinSearchQueryLength is the shortest query sent to the backend.
	MinSearchQueryLength = 2

	// PersonFacetLimit is how many people the feed offers as filter choices.
	PersonFacetLimit = 10

	// BoardCanvasSize bounds the random placement of new notes on both axes.
	BoardCanvasSize = 400

	// MaxMoveDelta bounds a single drag on either axis.
	MaxMoveDelta = 1_000_000

	// MaxNoteTitleLength fits a PostgreSQL VARCHAR(255)-sized title.
	MaxNoteTitleLength = 255

	// MaxNoteContentLength keeps a single note readable on the board.
	MaxNoteContentLength = 10000
)
