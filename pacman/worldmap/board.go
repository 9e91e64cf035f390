package worldmap

// DefaultBoard is the fixed ASCII layout consumed by Build. Per spec §6,
// this is the only external configuration the core truly needs.
//
// Character vocabulary (spec §4.1):
//
//	'#' Wall       '.' Pellet     'o' PowerPellet   ' ' Empty
//	'T' Tunnel endpoint (exactly two)   'X' Pac-Man spawn (exactly one)
//	'=' ghost-house door (exactly two, consecutive)
var DefaultBoard = []string{
	"#####################",
	"#o.................o#",
	"#...................#",
	"#..###.........###..#",
	"#..###.........###..#",
	"#..###.........###..#",
	"#......#.==.##......#",
	"#......#######......#",
	"#......#######......#",
	"#......#######......#",
	"T......#######......T",
	"#......#######......#",
	"#......#######......#",
	"#...................#",
	"#...................#",
	"#..###.........###..#",
	"#..###....X....###..#",
	"#..###.........###..#",
	"#...................#",
	"#o.................o#",
	"#####################",
}
