package types

// PaginationType classifies how (or whether) a SELECT is paginated.
type PaginationType int

const (
	// PaginationNone means neither a row-bounds/page parameter nor a
	// LIMIT clause is present.
	PaginationNone PaginationType = iota
	// PaginationLogical means the ORM accepted pagination intent
	// (row bounds or a page object) but nothing rewrites the SQL, so
	// the driver will fetch the whole result and slice it in memory.
	// This is the dangerous case.
	PaginationLogical
	// PaginationPhysical means the database performs the slicing,
	// either via a LIMIT clause or a pagination plugin rewrite.
	PaginationPhysical
)

// String returns the human-readable name of the pagination type.
func (p PaginationType) String() string {
	switch p {
	case PaginationLogical:
		return "LOGICAL"
	case PaginationPhysical:
		return "PHYSICAL"
	default:
		return "NONE"
	}
}
