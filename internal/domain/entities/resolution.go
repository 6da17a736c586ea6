package entities

// ResolutionStatus classifies what a sending address maps to.
type ResolutionStatus int

const (
	// ResolutionUnknown: address matched no profile.
	ResolutionUnknown ResolutionStatus = iota
	// ResolutionResolved: exactly one distinct user owns the address.
	ResolutionResolved
	// ResolutionAmbiguous: two or more distinct users share the address.
	ResolutionAmbiguous
)

// Resolution is the outcome of sender resolution. CandidateIDs is populated
// only for ResolutionAmbiguous and lists every distinct matching user.
type Resolution struct {
	Status       ResolutionStatus
	UserID       string
	CandidateIDs []string
}
