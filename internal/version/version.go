package version

// Version is overridden at release time with -ldflags "-X ...".
var Version = "dev"
