package domain

// Assignment links one student to one section. Identity is the pair itself,
// so Assignment is comparable and safe to use as a map/set key.
type Assignment struct {
	StudentID StudentID
	SectionID SectionID
}
