package types

import "fmt"

// ArchiveProvenance tracks text extracted from a document or archive member.
type ArchiveProvenance struct {
	ArchivePath string // path to the archive/binary file
	MemberPath  string // path within the archive (e.g., "word/document.xml")
}

// Kind returns "archive".
func (a ArchiveProvenance) Kind() string {
	return "archive"
}

// Path returns the archive path with member path.
func (a ArchiveProvenance) Path() string {
	return fmt.Sprintf("%s!%s", a.ArchivePath, a.MemberPath)
}
