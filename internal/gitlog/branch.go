package gitlog

import (
	"strconv"
	"strings"

	"github.com/EvSecDev/grist/internal/gitproc"
)

const branchFormat = "%(refname:short)%00%(objectname:short)%00%(upstream:short)%00%(upstream:track)%00%(committerdate:iso8601)%00%(HEAD)"

// GetBranches lists local and remote-tracking branches.
func GetBranches(inv *gitproc.Invoker) ([]Branch, error) {
	output, err := inv.RunChecked("branch", "-a", "--format="+branchFormat)
	if err != nil {
		return nil, err
	}
	return parseBranches(output), nil
}

func parseBranches(output string) []Branch {
	var branches []Branch

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\x00")
		if len(parts) < 6 {
			continue
		}

		name := parts[0]
		isRemote := strings.HasPrefix(name, "remotes/") || strings.HasPrefix(name, "origin/")
		isCurrent := parts[5] == "*"

		var remoteName string
		cleanName := name
		if isRemote {
			clean := strings.TrimPrefix(name, "remotes/")
			segments := strings.SplitN(clean, "/", 2)
			if len(segments) == 2 {
				remoteName = segments[0]
				cleanName = segments[1]
			} else {
				cleanName = clean
			}
		}

		ahead, behind := parseTrackInfo(parts[3])

		branches = append(branches, Branch{
			Name:           cleanName,
			IsCurrent:      isCurrent,
			IsRemote:       isRemote,
			RemoteName:     remoteName,
			Tracking:       parts[2],
			Ahead:          ahead,
			Behind:         behind,
			LastCommitHash: parts[1],
			LastCommitDate: parts[4],
		})
	}

	return branches
}

// parseTrackInfo extracts "ahead N" and "behind N" independently from a
// track string like "[ahead 1, behind 2]"; either or both may be absent.
func parseTrackInfo(track string) (ahead, behind uint32) {
	ahead = extractTrackCount(track, "ahead ")
	behind = extractTrackCount(track, "behind ")
	return ahead, behind
}

func extractTrackCount(track, marker string) uint32 {
	idx := strings.Index(track, marker)
	if idx < 0 {
		return 0
	}
	rest := track[idx+len(marker):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	n, err := strconv.ParseUint(rest[:end], 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}
