package pattern

// star is a normalized constellation point in [-1, 1] space with a
// relative magnitude scaling its dot size
type star struct {
	x, y float64
	mag  float64
}

// constellation is a fixed star layout with link index pairs
// Layouts are loose sketches of real asterisms, not astronomy
type constellation struct {
	stars []star
	links [][2]int
}

// constellations is the fixed geometry table renderers select from by seed
var constellations = []constellation{
	{
		// Cygnus cross
		stars: []star{
			{0, -0.9, 1.0}, {0, -0.3, 0.7}, {0, 0.4, 0.9}, {0, 0.95, 0.6},
			{-0.8, 0.05, 0.8}, {-0.4, -0.1, 0.6}, {0.45, -0.05, 0.7}, {0.85, 0.1, 0.9},
		},
		links: [][2]int{{0, 1}, {1, 2}, {2, 3}, {4, 5}, {5, 1}, {1, 6}, {6, 7}},
	},
	{
		// Cassiopeia W
		stars: []star{
			{-0.9, 0.3, 0.8}, {-0.45, -0.35, 1.0}, {0, 0.15, 0.7},
			{0.45, -0.4, 0.9}, {0.9, 0.25, 0.8},
		},
		links: [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}},
	},
	{
		// Lyra parallelogram with anchor
		stars: []star{
			{-0.1, -0.95, 1.0}, {-0.35, -0.4, 0.6}, {0.2, -0.35, 0.7},
			{-0.2, 0.5, 0.7}, {0.35, 0.55, 0.8},
		},
		links: [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 4}, {3, 4}},
	},
	{
		// Southern cross
		stars: []star{
			{0, -0.85, 1.0}, {0.1, 0.9, 0.9}, {-0.75, 0.1, 0.8}, {0.8, -0.05, 0.7},
		},
		links: [][2]int{{0, 1}, {2, 3}},
	},
}
