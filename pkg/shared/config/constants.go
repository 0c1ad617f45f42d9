package config

const (
	// Collision heights (cell height units)
	WallCollisionHeight = 2.0  // Walls are this tall
	MeterPerCellHeight  = 1.75 // Display conversion for cover heights

	// Body regions, as fractions of an interval's span added to its min
	BodyRegionBottomHeight = 0.45 // Hits below this fraction land in the bottom region
	BodyRegionMiddleHeight = 0.85 // Also the height creatures hold their weapons at

	// Crouching
	CrouchCoverEpsilon = 0.01 // Stay just above adjacent cover

	// Melee reach
	MeleeFallbackSpan  = 0.05 // Width of a band produced by fallback widening
	MeleeMiddleInset   = 0.05 // Middle attacks start slightly below the bottom threshold
	OneHandedReachMult = 0.1  // Reach per unit of weapon bulk
	TwoHandedReachMult = 0.05 // Two-handed weapons are held closer

	// Simulation
	TickSeconds         = 1.0 / 60.0
	CreatureStepSeconds = 0.5 // Time to walk one cell
	SightRangeCells     = 12  // Aggressive creatures notice enemies this close

	// Network
	BridgeAddr = ":8081"
	BridgePath = "/ws"
)
