package protocol

// VersionSum adds the version of p and of every packet below it.
func VersionSum(p Packet) uint64 {
	switch p := p.(type) {
	case *Literal:
		return uint64(p.Version)
	case *Operator:
		sum := uint64(p.Version)
		for _, child := range p.Children {
			sum += VersionSum(child)
		}
		return sum
	default:
		return 0
	}
}
