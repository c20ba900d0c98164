package ui

import "fmt"

// ListFormats handles the UI for listing supported scene formats
func ListFormats() {
	fmt.Printf("%s\nSupported scene formats:%s\n", ColorGreen, ColorReset)
	fmt.Printf("%s- ENVI raw/header pairs (.raw, .img, .bil, .bip, .bsq with a sibling .hdr)%s\n", ColorGreen, ColorReset)
	fmt.Printf("%s- TIFF band stacks (.tif, .tiff)%s\n", ColorGreen, ColorReset)
	fmt.Printf("%s- Files without a recognized extension are probed for an ENVI header, then as TIFF%s\n", ColorGreen, ColorReset)

	PrintWarning("Scenes without embedded wavelengths are assigned the canonical 400-1000nm grid;\nindex availability then depends on the band count.")
}
