package schema

// CoreBookTable represents the 'core.book' table
type CoreBookTable struct {
	Table       string
	ID          string
	Title       string
	Author      string
	Genre       string
	Description string
	CreatedAt   string
}

// CoreBook is the schema definition for core.book
var CoreBook = CoreBookTable{
	Table:       "core.book",
	ID:          "id",
	Title:       "title",
	Author:      "author",
	Genre:       "genre",
	Description: "description",
	CreatedAt:   "createdat",
}

// Columns returns all standard column names
func (t CoreBookTable) Columns() []string {
	return []string{t.ID, t.Title, t.Author, t.Genre, t.Description, t.CreatedAt}
}
