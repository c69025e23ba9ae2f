package constant

const (
	// StreamEndSentinel is the terminal SSE payload. Its absence means the
	// stream ended abnormally (transport close without completion).
	StreamEndSentinel = "[END]"

	// StreamErrorPrefix marks the single error event that replaces the rest
	// of a failed stream. [END] is still emitted after it.
	StreamErrorPrefix = "[ERROR] "
)
