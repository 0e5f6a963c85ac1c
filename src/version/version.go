package version

// Version is the compose-backup release string. Overridden at build time
// via -ldflags "-X compose-backup/src/version.Version=vX.Y.Z".
var Version = "0.1.0"
