package domain

// NotSpecified is the literal used for any field the source document does not
// specify. The extraction prompt instructs the model to use the same literal.
const NotSpecified = "Not specified in document"

// FlowType classifies an extracted integration flow.
type FlowType string

const (
	FlowTypeMain         FlowType = "Main Flow"
	FlowTypeAlternate    FlowType = "Alternate"
	FlowTypeException    FlowType = "Exception"
	FlowTypeVariant      FlowType = "Variant"
	FlowTypeNotSpecified FlowType = NotSpecified
)

// FlowTypeValues lists the allowed flow classifications, in schema order.
var FlowTypeValues = []FlowType{
	FlowTypeMain,
	FlowTypeAlternate,
	FlowTypeException,
	FlowTypeVariant,
	FlowTypeNotSpecified,
}

// RunStatus represents the lifecycle of an extraction run.
type RunStatus string

const (
	RunStatusProcessing RunStatus = "processing"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
)

// DocType represents the allowed document types for upload.
type DocType string

const (
	DocTypeText     DocType = "txt"
	DocTypeMarkdown DocType = "md"
)

// AllowedExtensions maps file extensions (without dot) to DocType.
var AllowedExtensions = map[string]DocType{
	"txt":      DocTypeText,
	"md":       DocTypeMarkdown,
	"markdown": DocTypeMarkdown,
}

// ContentTypeForDocType maps DocType to the MIME type recorded on the run.
var ContentTypeForDocType = map[DocType]string{
	DocTypeText:     "text/plain",
	DocTypeMarkdown: "text/markdown",
}
