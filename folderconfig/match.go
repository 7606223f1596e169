package folderconfig

import "github.com/vtex/go-resconfig/qualifier"

// Configurable is anything that exposes a configuration to be matched: a
// resource folder, a device profile.
type Configurable interface {
	Configuration() *Configuration
}

// MatchingConfigurables returns, in input order, the configurables whose
// configuration does not contradict c.
func (c *Configuration) MatchingConfigurables(configurables []Configurable) []Configurable {
	matching := make([]Configurable, 0, len(configurables))
	for _, candidate := range configurables {
		if config := configurationOf(candidate); config != nil && config.IsMatchFor(c) {
			matching = append(matching, candidate)
		}
	}
	return matching
}

// FindMatchingConfigurable returns the configurable that best matches c, the
// reference, or nil when none matches.
//
// Candidates that contradict the reference are dropped first. The survivors are
// then narrowed axis by axis in precedence order: at each axis where any of them
// has a qualifier, those without one, or with one other than the best match for
// the reference, are dropped. An earlier axis therefore always outweighs any
// number of later ones.
//
// When several candidates are still indistinguishable at the end, the first one
// in the input order is returned.
func (c *Configuration) FindMatchingConfigurable(configurables []Configurable) Configurable {
	matching := c.MatchingConfigurables(configurables)
	switch len(matching) {
	case 0:
		return nil
	case 1:
		return matching[0]
	}

	for axis := qualifier.Axis(0); axis < qualifier.AxisCount; axis++ {
		// With no reference qualifier every candidate qualifier counts as the
		// best one, so bestMatch stays nil and only empty slots are dropped.
		reference := c.qualifiers[axis]

		found := false
		var bestMatch *qualifier.Qualifier
		for _, candidate := range matching {
			q := candidate.Configuration().Get(axis)
			if q == nil {
				continue
			}
			found = true
			if reference != nil && q.IsBetterMatchThan(bestMatch, reference) {
				bestMatch = q
			}
		}
		if !found {
			continue
		}

		kept := matching[:0]
		for _, candidate := range matching {
			q := candidate.Configuration().Get(axis)
			if q == nil {
				continue
			}
			if reference != nil && bestMatch != nil && !bestMatch.Equals(q) {
				continue
			}
			kept = append(kept, candidate)
		}
		matching = kept

		if len(matching) < 2 {
			break
		}
	}

	if len(matching) == 0 {
		return nil
	}
	return matching[0]
}

func configurationOf(c Configurable) *Configuration {
	if c == nil {
		return nil
	}
	return c.Configuration()
}
