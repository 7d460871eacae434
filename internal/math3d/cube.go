package math3d

// CubeVertices are the corners of the unit cube at (±1, ±1, ±1).
var CubeVertices = [8]Vec3{
	{-1, -1, -1},
	{1, -1, -1},
	{1, 1, -1},
	{-1, 1, -1},
	{-1, -1, 1},
	{1, -1, 1},
	{1, 1, 1},
	{-1, 1, 1},
}

// CubeEdges index into CubeVertices.
var CubeEdges = [12][2]int{
	// back face
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	// front face
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	// connecting lines
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}
