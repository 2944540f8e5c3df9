package notes

import "regexp"

// objectIDRegex matches the document store's identifier: 24 hexadecimal characters.
var objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidObjectID checks whether a string matches the object identifier format.
//
// Note: This validates format only. It does not check that the note exists.
func IsValidObjectID(id string) bool {
	return objectIDRegex.MatchString(id)
}
