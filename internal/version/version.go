// ABOUTME: Version information for voiceturn
// ABOUTME: Reported by the -version flag and the status view header
package version

const (
	// Version is the release version
	Version = "0.1.0"
	// Product is the display name
	Product = "voiceturn"
	// Manufacturer identifies the maintainers
	Manufacturer = "voiceturn contributors"
)

// String returns "Product Version"
func String() string {
	return Product + " " + Version
}
