package types

// Service is the service name used in logs and the health endpoint
const Service = "drover"

// Version is the service version. Overwritten via -ldflags at build time.
var Version = "0.1.0"
