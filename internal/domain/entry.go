package domain

// EntryKind selects which entry table a deletion targets.
type EntryKind int

const (
	EntryKindTop EntryKind = iota
	EntryKindBranch
)

// Table returns the table that stores entries of this kind.
func (k EntryKind) Table() string {
	if k == EntryKindBranch {
		return "branch_entries"
	}
	return "entries"
}

func (k EntryKind) String() string {
	if k == EntryKindBranch {
		return "branch_entry"
	}
	return "entry"
}

// DeleteEntriesRequest is the body of the bulk entry deletion endpoint.
type DeleteEntriesRequest struct {
	Data struct {
		UUIDs []string `json:"uuids" validate:"max=1000,dive,ec5_uuid"`
	} `json:"data"`
}
