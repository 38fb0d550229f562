package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	Logger "github.com/moodfeed/tslamood/utils/log"
)

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// TextToSha256Hash returns the hex encoded sha256 digest of the trimmed,
// lower-cased input. Used as the canonical identity key for documents.
func TextToSha256Hash(text string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(text))))
	return hex.EncodeToString(sum[:])
}

// ImmediatePrintError logs the error at the call site and returns it
// unchanged, so that `return utils.ImmediatePrintError(err)` both surfaces
// and propagates.
func ImmediatePrintError(err error) error {
	if err != nil {
		Logger.Log.Error(fmt.Sprintf("%v", err))
	}
	return err
}
