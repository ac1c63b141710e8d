package domain

// ResultKey identifies a deterministic computation by its full input.
// Equal keys always produce equal results.
type ResultKey struct {
	Operation string
	Params    []string
	Texts     []string
}
