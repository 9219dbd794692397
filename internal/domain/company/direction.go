package company

// Direction is a subject-matter tag a request can be filed under.
type Direction struct {
	ID    uint
	Title string
}
