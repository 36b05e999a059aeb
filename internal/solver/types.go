package solver

// Metadata describes a registered solver.
type Metadata struct {
	ID          string
	Part        int
	Name        string
	Description string
}

// Solver turns input lines into a printable answer.
type Solver interface {
	Metadata() Metadata
	Solve(lines []string) (string, error)
}
