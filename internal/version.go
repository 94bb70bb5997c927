package internal

// Version is the current release of wortkarte.
const Version = "0.3.0"
