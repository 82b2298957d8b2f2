// Package export turns rendered card HTML into images. PNG drives a headless
// Chrome through chromedp and screenshots the card element; Thumbnail scales
// an exported PNG down for listings.
package export
