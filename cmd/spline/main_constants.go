package main

// Default command-line flag values
const (
	defaultX      = "0,1,2,3" // x² sampled at the integers
	defaultY      = "0,1,4,9"
	defaultDegree = "linear"
	defaultFrom   = -1.0
	defaultTo     = 4.0
	defaultSteps  = 11
)

// Query grid limits
const (
	minSteps = 2 // Span needs both ends of the range
)
