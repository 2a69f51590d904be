package errors

// Code is a machine-readable error code surfaced to tool callers.
type Code string

const (
	CodeUnknownOperation Code = "UNKNOWN_OPERATION" // Operation name is not registered
	CodeMissingArgument  Code = "MISSING_ARGUMENT"  // Required argument absent
	CodeUnknownArgument  Code = "UNKNOWN_ARGUMENT"  // Argument not declared by the operation
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"  // Argument present but not coercible
	CodeNotFound         Code = "NOT_FOUND"         // Referenced container/image/network/volume missing
	CodeConflict         Code = "CONFLICT"          // Engine rejected due to resource state
	CodeEngineFailure    Code = "ENGINE_FAILURE"    // Engine errored or rejected the call
	CodeTimeout          Code = "TIMEOUT"           // Bounded operation exceeded its deadline
)

// ClientInput reports whether the code denotes a caller-input error the
// caller can fix by correcting its request.
func (c Code) ClientInput() bool {
	switch c {
	case CodeUnknownOperation, CodeMissingArgument, CodeUnknownArgument, CodeInvalidArgument:
		return true
	}
	return false
}
