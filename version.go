package tally

// Version is the current release of tally.
var Version = "0.1.0"
