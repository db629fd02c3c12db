package engine

import "strconv"

// CollectBufferDecls scans comment-stripped lines for fixed-size char array
// declarations and returns a name -> element count table. The heuristic is
// deliberately shallow: only decimal literal sizes are recognized, there is
// no scope awareness, and a later declaration of the same name overwrites an
// earlier one.
func CollectBufferDecls(lines []string) map[string]int {
	table := make(map[string]int)
	for _, line := range lines {
		m := charArrayDeclRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		size, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		table[m[1]] = size
	}
	return table
}
