package views

// BuildShoppingList unions existing with every list in lists, dropping
// exact duplicates and keeping the position of each item's first
// occurrence.
func BuildShoppingList(existing []string, lists ...[]string) []string {
	seen := make(map[string]struct{}, len(existing))
	out := make([]string, 0, len(existing))

	add := func(items []string) {
		for _, item := range items {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}

	add(existing)
	for _, l := range lists {
		add(l)
	}
	return out
}
