package grist

import (
	"strings"
	"testing"
)

func TestErrorMessagesIncludeContext(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&MergeConflictError{}, "merge conflict"},
		{&UncommittedChangesError{}, "uncommitted changes present"},
		{&BranchExistsError{Name: "feature/x"}, "feature/x"},
		{&BranchNotFoundError{Name: "feature/y"}, "feature/y"},
		{&RemoteNotFoundError{Name: "origin"}, "origin"},
		{&OperationInProgressError{Operation: "rebase"}, "rebase"},
		{&DecryptionFailedError{Message: "key is locked"}, "key is locked"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got == "" {
			t.Errorf("%T.Error() returned empty string", c.err)
		} else if !strings.Contains(got, c.want) {
			t.Errorf("%T.Error() = %q, want it to contain %q", c.err, got, c.want)
		}
	}
}
