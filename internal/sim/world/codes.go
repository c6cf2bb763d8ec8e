package world

// Reason codes attached to refused operations.
const (
	ReasonCapacity      = "E_CAPACITY"
	ReasonSkill         = "E_SKILL"
	ReasonNotMember     = "E_NOT_MEMBER"
	ReasonAlreadyMember = "E_ALREADY_MEMBER"
	ReasonFunds         = "E_FUNDS"
	ReasonNoResidence   = "E_NO_RESIDENCE"
	ReasonUnknown       = "E_UNKNOWN"
)

var knownCodes = map[string]struct{}{
	ReasonCapacity:      {},
	ReasonSkill:         {},
	ReasonNotMember:     {},
	ReasonAlreadyMember: {},
	ReasonFunds:         {},
	ReasonNoResidence:   {},
	ReasonUnknown:       {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
