package models

// Valid issue type values accepted by the report intake endpoint.
const (
	IssueTypeWageDelay   = "wage_delay"
	IssueTypeWorkQuality = "work_quality"
	IssueTypeCorruption  = "corruption"
	IssueTypeOther       = "other"
)

// ValidIssueType reports whether t is one of the accepted issue types.
func ValidIssueType(t string) bool {
	switch t {
	case IssueTypeWageDelay, IssueTypeWorkQuality, IssueTypeCorruption, IssueTypeOther:
		return true
	}
	return false
}

// IssueReportInput is the intake payload for a new report. All
// nullable columns use pointers to distinguish empty from NULL.
type IssueReportInput struct {
	DistrictID    int
	IssueType     string
	Description   *string
	VoiceNoteURL  *string
	ContactNumber *string
}
