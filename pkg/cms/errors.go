package cms

import (
	"fmt"
	"strings"
)

// PartialIndexError reports that a content item's primary record was written
// but one or more secondary artifacts (index membership, search projection)
// failed. The primary write is not rolled back and no automatic repair runs;
// the caller decides whether to retry the whole upsert.
type PartialIndexError struct {
	ItemID    string
	Artifacts []string
	Err       error
}

func (e *PartialIndexError) Error() string {
	return fmt.Sprintf("content item %s written but secondary artifacts failed (%s): %v",
		e.ItemID, strings.Join(e.Artifacts, ", "), e.Err)
}

func (e *PartialIndexError) Unwrap() error {
	return e.Err
}
