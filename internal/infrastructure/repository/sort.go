package repository

// sortClause builds an ORDER BY clause from user-supplied sort params. The
// column must be one of the allowed names since it cannot be bound as a query
// placeholder; anything else falls back to created_at. Direction defaults to
// DESC.
func sortClause(sortBy, sortOrder string, allowed ...string) string {
	column := "created_at"
	for _, name := range allowed {
		if sortBy == name {
			column = name
			break
		}
	}

	direction := "DESC"
	if sortOrder == "ASC" || sortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}
