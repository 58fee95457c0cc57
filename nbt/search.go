package nbt

// FindCompounds walks the tree rooted at c and collects every compound stored
// under the given entry name, descending into nested compounds and into
// compound elements of lists. A matched compound is returned as-is and not
// searched further for nested matches.
func FindCompounds(c *Compound, name string) []*Compound {
	var found []*Compound
	findCompounds(c, name, false, &found)

	return found
}

// FindFirstCompound is FindCompounds stopping at the first match.
func FindFirstCompound(c *Compound, name string) (*Compound, bool) {
	var found []*Compound
	findCompounds(c, name, true, &found)
	if len(found) == 0 {
		return nil, false
	}

	return found[0], true
}

func findCompounds(c *Compound, name string, stopAtFirst bool, found *[]*Compound) bool {
	for entryName, tag := range c.All() {
		if child, ok := tag.Compound(); ok {
			if entryName == name {
				*found = append(*found, child)
				if stopAtFirst {
					return true
				}

				continue
			}
			if findCompounds(child, name, stopAtFirst, found) && stopAtFirst {
				return true
			}

			continue
		}

		if elems, ok := tag.List(); ok {
			for i := range elems {
				child, ok := elems[i].Compound()
				if !ok {
					break
				}
				if findCompounds(child, name, stopAtFirst, found) && stopAtFirst {
					return true
				}
			}
		}
	}

	return len(*found) > 0
}
