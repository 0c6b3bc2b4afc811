package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields, propagated through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldSource is the image source identifier
	FieldSource = "source"

	// FieldCommand is the CLI command being run
	FieldCommand = "command"
)

// Gallery fields.
const (
	FieldCursor    = "cursor"
	FieldIndex     = "index"
	FieldReference = "reference"
	FieldGallery   = "gallery_size"
)

// Metric fields, used with the Entry API for aggregation.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"
)
