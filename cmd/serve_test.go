package cmd

import (
	"strings"
	"testing"
)

func TestServeHelp_MentionsSharedSession(t *testing.T) {
	if !strings.Contains(serveCmd.Long, "cancels the running one") {
		t.Errorf("serve help should say a new generate cancels the running one:\n%s", serveCmd.Long)
	}
}
