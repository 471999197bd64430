package ports

// Contract for distances between location indices.
// Distances are non-negative and symmetric.
type DistanceOracle interface {
	// Return the distance between two location indices.
	Distance(from, to int) (float64, error)
	// Number of locations the oracle knows about.
	Size() int
}
