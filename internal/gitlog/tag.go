package gitlog

import (
	"strings"

	"github.com/EvSecDev/grist/internal/gitproc"
)

const tagFormat = "%(refname:short)%00%(objectname)%00%(objectname:short)%00%(taggername)%00%(taggerdate:iso8601)%00%(contents:subject)%00%(*objectname)"

// GetTags lists tags, lightweight and annotated.
func GetTags(inv *gitproc.Invoker) ([]Tag, error) {
	output, err := inv.RunChecked("tag", "-l", "--format="+tagFormat)
	if err != nil {
		return nil, err
	}
	return parseTags(output), nil
}

func parseTags(output string) []Tag {
	var tags []Tag

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\x00")
		if len(parts) < 7 {
			continue
		}

		tagger := parts[3]
		isAnnotated := parts[6] != "" || tagger != ""

		tags = append(tags, Tag{
			Name:        parts[0],
			Hash:        parts[1],
			ShortHash:   parts[2],
			Tagger:      tagger,
			Date:        parts[4],
			Message:     parts[5],
			IsAnnotated: isAnnotated,
		})
	}

	return tags
}

// CreateTag creates an annotated tag when message is non-empty, otherwise
// a lightweight one. targetRef defaults to HEAD when empty.
func CreateTag(inv *gitproc.Invoker, name, targetRef, message string) error {
	args := []string{"tag"}
	if message != "" {
		args = append(args, "-a", name, "-m", message)
	} else {
		args = append(args, name)
	}
	if targetRef != "" {
		args = append(args, targetRef)
	}
	_, err := inv.RunChecked(args...)
	return err
}

// DeleteTag removes a local tag.
func DeleteTag(inv *gitproc.Invoker, name string) error {
	_, err := inv.RunChecked("tag", "-d", name)
	return err
}

// DeleteRemoteTag removes a tag from remote.
func DeleteRemoteTag(inv *gitproc.Invoker, remote, name string) error {
	_, err := inv.RunChecked("push", remote, "--delete", "refs/tags/"+name)
	return err
}
