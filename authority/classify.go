package authority

// EntityType is the kind of entity an authority record describes.
type EntityType int

const (
	Unknown EntityType = iota
	Person
	NameTitle
	Corporation
	Conference
	UniformTitle
	Geographic
	// Unimplemented marks authorities we recognize but do not map, like LOC
	// subject headings.
	Unimplemented
)

var entityNames = map[EntityType]string{
	Unknown:       "unknown",
	Person:        "person",
	NameTitle:     "name-title",
	Corporation:   "corporation",
	Conference:    "conference",
	UniformTitle:  "uniform-title",
	Geographic:    "geographic",
	Unimplemented: "unimplemented",
}

func (t EntityType) String() string {
	if s, ok := entityNames[t]; ok {
		return s
	}
	return "invalid"
}

// Classify returns the first matching entity type, checked in this order:
// person, name-title, corporation, conference, uniform title, geographic.
// Later rules are not consulted once one matches.
func Classify(b Bundles) EntityType {
	p := b.Personal
	switch {
	case p.Err == nil && p.Name != "" && p.Title == "":
		return Person
	case p.Err == nil && p.Name != "" && p.Title != "":
		return NameTitle
	case b.Corporate.Err == nil:
		return Corporation
	case b.Meeting.Err == nil:
		return Conference
	case b.Title.Err == nil:
		return UniformTitle
	case b.Place.Err == nil:
		return Geographic
	default:
		return Unknown
	}
}
