package mapgen

import "math"

// Kernel is the stamp the walker carves with: a Size x Size region whose
// member cells lie within an interpolated radius of the center. Kernels
// are immutable values; a mutation swaps the whole Kernel rather than
// editing it in place.
//
// Membership uses one rule everywhere: with center c = (Size-1)/2, the
// effective radius interpolates between the inscribed radius c and the
// corner radius sqrt(2)*c by Circularity. An offset (x, y) is a member
// iff (x-c)^2 + (y-c)^2 <= r^2. Circularity 0 approximates a disc,
// 1 covers the full square.
type Kernel struct {
	Size        int
	Circularity float64
}

// NewKernel returns a kernel of the given size and circularity.
// Circularity is clamped to [0, 1].
func NewKernel(size int, circularity float64) Kernel {
	if circularity < 0 {
		circularity = 0
	}
	if circularity > 1 {
		circularity = 1
	}
	return Kernel{Size: size, Circularity: circularity}
}

// Radius returns the effective carving radius of the kernel.
func (k Kernel) Radius() float64 {
	center := float64(k.Size-1) / 2
	minRadius := center
	maxRadius := math.Sqrt2 * center
	return minRadius + k.Circularity*(maxRadius-minRadius)
}

// Contains reports whether the offset (x, y), with x and y in
// [0, Size), is a member of the stamp.
func (k Kernel) Contains(x, y int) bool {
	if x < 0 || x >= k.Size || y < 0 || y >= k.Size {
		return false
	}

	center := float64(k.Size-1) / 2
	radius := k.Radius()
	dx := float64(x) - center
	dy := float64(y) - center
	return dx*dx+dy*dy <= radius*radius
}

// CellCount returns the number of member offsets, mostly useful in tests
// and for sizing buffers.
func (k Kernel) CellCount() int {
	count := 0
	for y := 0; y < k.Size; y++ {
		for x := 0; x < k.Size; x++ {
			if k.Contains(x, y) {
				count++
			}
		}
	}
	return count
}
