package mirror

// Baked in at build time with the linker:
//
//	go build -ldflags "-X github.com/Pix4D/mirror/mirror.buildinfo=v1.2.3"
var buildinfo = "unknown"

// BuildInfo returns human-readable build information (tag, git commit, date, ...).
func BuildInfo() string {
	return "mirror: replace a directory tree with a copy of another. " + buildinfo
}
