package deb

import "sort"

// Latest returns the archive with the highest version among sources that
// all share one package name.
//
// Every source is resolved first; any invalid filename fails the whole
// call with an *InvalidFormatError, and mixed package names fail with an
// *InconsistentNameError naming the distinct packages found. An empty
// input is not an error: ok is false and no archive is returned.
//
// Ties on the full (name, version, architecture) key resolve to the
// latest-occurring source, deterministically for a given input order.
func Latest(sources []Source) (latest Archive, ok bool, err error) {
	if len(sources) == 0 {
		return Archive{}, false, nil
	}
	archives, err := resolveAll(sources)
	if err != nil {
		return Archive{}, false, err
	}
	sortArchives(archives)

	// After sorting, equal names are contiguous: collecting run heads
	// yields the distinct names already sorted.
	var names []string
	for _, a := range archives {
		if len(names) == 0 || names[len(names)-1] != a.Name {
			names = append(names, a.Name)
		}
	}
	if len(names) > 1 {
		return Archive{}, false, &InconsistentNameError{Names: names}
	}
	return archives[len(archives)-1], true, nil
}

// LatestPerName returns, for every package name present in sources, the
// archive with the highest version. The result has exactly one entry per
// distinct name; an empty input yields a nil map.
//
// Like Latest, the call fails as a whole on the first invalid source: no
// partial mapping is ever returned.
func LatestPerName(sources []Source) (map[string]Archive, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	archives, err := resolveAll(sources)
	if err != nil {
		return nil, err
	}
	sortArchives(archives)

	// One linear pass over the name-runs: the last element of each run
	// holds the maximum key.
	latests := make(map[string]Archive)
	for i, a := range archives {
		if i+1 == len(archives) || archives[i+1].Name != a.Name {
			latests[a.Name] = a
		}
	}
	return latests, nil
}

// resolveAll parses every source, failing the whole batch on the first
// invalid element.
func resolveAll(sources []Source) ([]Archive, error) {
	archives := make([]Archive, 0, len(sources))
	for _, s := range sources {
		a, err := s.resolve()
		if err != nil {
			return nil, err
		}
		archives = append(archives, a)
	}
	return archives, nil
}

// sortArchives sorts by the full (name, version, architecture) key. The
// sort is stable so that equal-key archives keep their input order and
// the tie-break rule stays reproducible.
func sortArchives(archives []Archive) {
	sort.SliceStable(archives, func(i, j int) bool {
		return archives[i].Compare(archives[j]) < 0
	})
}
