package models

// BillDraft is the payload of the first persistence phase: only the
// attachment and the submitter are known at this point.
type BillDraft struct {
	Email    string
	FileName string
	Content  []byte
}

// BillCreated is what the store hands back once the attachment is
// uploaded: the storage URL and the provisional record key the final
// update must reuse.
type BillCreated struct {
	FileURL string
	Key     string
}
