package matcher

import "github.com/praetorian-inc/rexp/pkg/types"

// buildMatch converts one submatch index vector (pairs of start/end byte
// offsets, -1 for groups that did not participate) into a MatchResult with
// numGroups captures. Group bytes alias subject. lines must index subject.
// A span that does not lie within subject is reported as an absent group.
func buildMatch(subject []byte, lines *types.LineIndex, indices []int, names []string, numGroups int) types.MatchResult {
	groups := make([]types.Capture, 0, numGroups)
	for i := 0; i < numGroups; i++ {
		name := groupName(names, i)
		if 2*i+1 >= len(indices) {
			groups = append(groups, types.AbsentCapture(i, name))
			continue
		}
		start, end := indices[2*i], indices[2*i+1]
		if start < 0 || start > end || end > len(subject) {
			groups = append(groups, types.AbsentCapture(i, name))
			continue
		}
		span := types.OffsetSpan{Start: start, End: end}
		groups = append(groups, types.PresentCapture(i, name, subject[start:end:end], span))
	}

	whole := types.OffsetSpan{Start: indices[0], End: indices[1]}
	return types.MatchResult{
		Location: lines.Location(whole),
		Groups:   groups,
	}
}

func groupName(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return ""
}
