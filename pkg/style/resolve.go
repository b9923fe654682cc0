package style

// Resolve produces the active rule set for one check invocation from the
// catalog and the user's configuration:
//
//  1. If selectCodes is non-empty, only rules with those codes are kept.
//  2. Rules with codes in ignore are removed. Ignore always wins over
//     select for overlapping codes.
//  3. Each custom rule replaces the resolved rule sharing its code, or is
//     appended as a new rule.
//
// The result carries no duplicate codes and a stable order (catalog order,
// then appended custom rules in given order), so violation order is
// deterministic for equal-priority rules on the same node.
func Resolve(catalog *Catalog, selectCodes, ignore []string, custom []Rule) []Rule {
	selected := toSet(selectCodes)
	ignored := toSet(ignore)

	var resolved []Rule
	index := make(map[string]int)
	for _, r := range catalog.Rules() {
		if len(selected) > 0 && !selected[r.Code()] {
			continue
		}
		if ignored[r.Code()] {
			continue
		}
		index[r.Code()] = len(resolved)
		resolved = append(resolved, r)
	}

	for _, r := range custom {
		if i, ok := index[r.Code()]; ok {
			resolved[i] = r
			continue
		}
		index[r.Code()] = len(resolved)
		resolved = append(resolved, r)
	}

	return resolved
}

func toSet(codes []string) map[string]bool {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}
