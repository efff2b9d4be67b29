package cff

// Version is the current version of the cff package.
const Version = "1.0.0"

// MinCompatibleVersion is the minimum version of callers this package
// remains compatible with.
const MinCompatibleVersion = "1.0.0"
