//go:build !amd64 && !arm64

package hwy

func init() {
	// Other architectures run the pure Go loops.
	setScalarMode()
}
