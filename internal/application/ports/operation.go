package ports

// Operation is what the caller wants to do with a file record.
type Operation int

const (
	OpView Operation = iota
	OpDownload
	OpDelete
)
