// Package branding holds product naming shared by every surface.
package branding

// AppName is the product display name.
const AppName = "Inpact"
