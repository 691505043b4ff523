package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// IDPath is the route suffix of a single record.
	IDPath = "/:id"

	// ErrNilACDFatalLogMsg is used if router or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "router, cfg or db is nil"
)
