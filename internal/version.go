package internal

// Version is the current wordreel release version.
const Version = "0.3.1"
