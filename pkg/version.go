package pkg

// VERSION is set at build time with -ldflags "-X nq2jld/pkg.VERSION=..."
var VERSION = "dev"
