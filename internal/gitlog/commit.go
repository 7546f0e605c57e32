package gitlog

import (
	"strconv"
	"strings"

	"github.com/EvSecDev/grist/internal/gitproc"
)

// logFormat carries both author and committer identity, unlike the
// upstream app's author-only format: rebase and cherry-pick can leave the
// two diverged, and the UI needs to show that.
const logFormat = "%H%x00%h%x00%an%x00%ae%x00%aI%x00%at%x00%cn%x00%ce%x00%cI%x00%ct%x00%s%x00%b%x00%P%x00%D%x00---END---"

const logFieldCount = 14

// GetCommitLog runs log with the custom format and returns up to count
// commits, skipping the first skip.
func GetCommitLog(inv *gitproc.Invoker, count, skip uint32) ([]Commit, error) {
	output, err := inv.RunChecked("log", "--all", "--topo-order", "--decorate=full",
		"--format="+logFormat, "-n", strconv.FormatUint(uint64(count), 10),
		"--skip", strconv.FormatUint(uint64(skip), 10))
	if err != nil {
		return nil, err
	}
	return parseLog(output), nil
}

func parseLog(output string) []Commit {
	var commits []Commit

	for _, entry := range strings.Split(output, "---END---") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "\x00")
		if len(parts) < logFieldCount {
			continue
		}

		authorTS, _ := strconv.ParseInt(parts[5], 10, 64)
		committerTS, _ := strconv.ParseInt(parts[9], 10, 64)

		var parentHashes []string
		if strings.TrimSpace(parts[12]) != "" {
			parentHashes = strings.Fields(parts[12])
		}

		var refs []string
		for _, ref := range strings.Split(parts[13], ", ") {
			ref = strings.TrimSpace(ref)
			if ref != "" {
				refs = append(refs, ref)
			}
		}

		commits = append(commits, Commit{
			Hash:               parts[0],
			ShortHash:          parts[1],
			AuthorName:         parts[2],
			AuthorEmail:        parts[3],
			AuthorDate:         parts[4],
			AuthorTimestamp:    authorTS,
			CommitterName:      parts[6],
			CommitterEmail:     parts[7],
			CommitterDate:      parts[8],
			CommitterTimestamp: committerTS,
			Subject:            parts[10],
			Body:               parts[11],
			ParentHashes:       parentHashes,
			Refs:               refs,
		})
	}

	return commits
}
