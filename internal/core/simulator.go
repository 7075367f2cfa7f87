package core

// Operation identifies a mutating store operation for failure injection.
// Reads never consult the injector.
type Operation string

const (
	OpCreateJob       Operation = "job.create"
	OpUpdateJob       Operation = "job.update"
	OpReorderJob      Operation = "job.reorder"
	OpCreateCandidate Operation = "candidate.create"
	OpUpdateCandidate Operation = "candidate.update"
	OpAddNote         Operation = "candidate.add_note"
	OpSaveAssessment  Operation = "assessment.save"
	OpSubmitResponse  Operation = "assessment.submit"
)

// FailureInjector decides whether a write operation should fail artificially.
// Implementations must be safe for concurrent use. Services consult the
// injector after validation and existence checks but before any mutation, so
// an injected failure never leaves partial state behind.
type FailureInjector interface {
	Decide(op Operation) bool
}
