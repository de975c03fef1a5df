package types

// Version is overridden at build time via -ldflags "-X".
var Version = "dev"

// AppName is used for the settings directory and the health endpoint.
const AppName = "donutshop"
