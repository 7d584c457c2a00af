package domain

// EntityType names a reference entity that feeds one selector.
type EntityType int

const (
	EntityState EntityType = iota
	EntityProject
	EntitySupplier
)

// EntityTypes lists every reference entity in selector order.
var EntityTypes = []EntityType{EntityState, EntityProject, EntitySupplier}

func (e EntityType) String() string {
	switch e {
	case EntityState:
		return "state"
	case EntityProject:
		return "project"
	case EntitySupplier:
		return "supplier"
	default:
		return "unknown"
	}
}

// Title is the selector heading.
func (e EntityType) Title() string {
	switch e {
	case EntityState:
		return "State"
	case EntityProject:
		return "Project"
	case EntitySupplier:
		return "Supplier"
	default:
		return "?"
	}
}

// ReferenceOption is the uniform projection of a state, project or supplier
// record shown in a selector.
type ReferenceOption struct {
	ID    string
	Label string
}
