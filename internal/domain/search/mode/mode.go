package mode

// Mode is the search strategy.
type Mode string

// Search mode constants.
const (
	// Hybrid combines semantic and lexical search through weighted fusion.
	Hybrid   Mode = "hybrid"
	Semantic Mode = "semantic"
	Text     Mode = "text"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Hybrid || m == Semantic || m == Text
}
