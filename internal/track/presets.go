package track

// presets is the built-in catalog, written row by row from the top.
var presets = [...][Rows]string{
	{
		".....",
		".....",
		".....",
		"#####",
	},
	{
		"#####",
		"....#",
		"#####",
		"#....",
	},
	{
		".....",
		"..#..",
		"###..",
		"#....",
	},
}

// Presets returns a copy of the built-in track catalog.
func Presets() []Track {
	out := make([]Track, 0, len(presets))
	for _, rows := range presets {
		out = append(out, Parse(rows))
	}
	return out
}

// Parse reads a track drawn with '#' (or 'S') for path cells and any other
// byte for empty cells.
func Parse(rows [Rows]string) Track {
	var t Track
	for r, line := range rows {
		for c := 0; c < Cols && c < len(line); c++ {
			t.Set(Cell{Row: r, Col: c}, line[c] == '#' || line[c] == 'S')
		}
	}
	return t
}

