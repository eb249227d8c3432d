// Package noise provides the layered value-noise "rain" generator used by
// the environment diffusion kernel, plus an opensimplex-backed generator
// for environment-init field seeding.
package noise

import "math"

// Field is a classic 3-D Perlin-style value noise field with its own
// permutation table, seeded independently per channel (spec uses two
// independent fields, seeded 12345 and 67890, with the epoch as the third
// axis).
type Field struct {
	perm [512]int
}

// NewField builds a permutation table from seed using a linear-congruential
// shuffle, deterministic per seed.
func NewField(seed int64) *Field {
	f := &Field{}
	var p [256]int
	for i := range p {
		p[i] = i
	}

	state := uint64(seed)
	if state == 0 {
		state = 0x9E3779B97F4A7C15
	}
	nextRand := func(n int) int {
		state = state*6364136223846793005 + 1442695040888963407
		return int((state >> 33) % uint64(n))
	}

	for i := len(p) - 1; i > 0; i-- {
		j := nextRand(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	for i := 0; i < 256; i++ {
		f.perm[i] = p[i]
		f.perm[i+256] = p[i]
	}
	return f
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad3D(hash int, x, y, z float64) float64 {
	h := hash & 15
	var u, v float64
	if h < 8 {
		u = x
	} else {
		u = y
	}
	if h < 4 {
		v = y
	} else if h == 12 || h == 14 {
		v = x
	} else {
		v = z
	}
	var ru, rv float64
	if h&1 == 0 {
		ru = u
	} else {
		ru = -u
	}
	if h&2 == 0 {
		rv = v
	} else {
		rv = -v
	}
	return ru + rv
}

// Noise3D evaluates classic Perlin noise at (x,y,z), returning a value in
// roughly [-1,1].
func (f *Field) Noise3D(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255

	xf := x - math.Floor(x)
	yf := y - math.Floor(y)
	zf := z - math.Floor(z)

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	p := f.perm[:]
	a := p[xi] + yi
	aa := p[a] + zi
	ab := p[a+1] + zi
	b := p[xi+1] + yi
	ba := p[b] + zi
	bb := p[b+1] + zi

	x1 := lerp(u, grad3D(p[aa], xf, yf, zf), grad3D(p[ba], xf-1, yf, zf))
	x2 := lerp(u, grad3D(p[ab], xf, yf-1, zf), grad3D(p[bb], xf-1, yf-1, zf))
	y1 := lerp(v, x1, x2)

	x3 := lerp(u, grad3D(p[aa+1], xf, yf, zf-1), grad3D(p[ba+1], xf-1, yf, zf-1))
	x4 := lerp(u, grad3D(p[ab+1], xf, yf-1, zf-1), grad3D(p[bb+1], xf-1, yf-1, zf-1))
	y2 := lerp(v, x3, x4)

	return lerp(w, y1, y2)
}

// Noise01 evaluates Noise3D and rescales the result into [0,1].
func (f *Field) Noise01(x, y, z float64) float64 {
	return (f.Noise3D(x, y, z) + 1) * 0.5
}

// LayeredNoise01 sums octaves octaves of Noise01 at doubling frequency and
// halving amplitude, normalized back into [0,1].
func (f *Field) LayeredNoise01(x, y, z float64, octaves int, contrast float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var sum, amp, norm float64
	freq := 1.0
	amp = 1.0
	for i := 0; i < octaves; i++ {
		sum += f.Noise01(x*freq, y*freq, z*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2.0
	}
	v := sum / norm
	if contrast != 1.0 {
		v = math.Pow(v, contrast)
	}
	return v
}
