package internal

// Version is the current release version of pale.
var Version = "0.1.0"
