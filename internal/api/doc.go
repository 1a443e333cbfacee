// Package api exposes the codediff library surface to Lua callers.
//
// Embedders build a registry, then inject it into a Lua state:
//
//	reg, err := api.DefaultRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := reg.InjectAll(L); err != nil {
//	    log.Fatal(err)
//	}
//
// Lua code then accesses the library through the codediff module:
//
//	local codediff = require("codediff")
//	print(codediff.get_version())  --> 0.3.0
//
// # API
//
// Available functions:
//   - codediff.get_version(): the library version string. Stable for the
//     life of a build, never errors.
//
// The codediff table also carries _VERSION, following the Lua module
// convention.
package api
