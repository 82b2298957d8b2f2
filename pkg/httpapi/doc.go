// Package httpapi exposes template persistence, card preview and validation
// over HTTP, plus the placeholder image endpoint that rendered cards point at
// when an image value is missing.
//
//	GET    /templates
//	POST   /templates
//	GET    /templates/{id}
//	PUT    /templates/{id}
//	DELETE /templates/{id}
//	POST   /templates/{id}/preview?renderer=html|json&theme=&variant=
//	POST   /templates/{id}/validate
//	GET    /placeholder/{size}/{bg}/{fg}?text=
//
// Errors are JSON objects of the form {"error": "..."}.
package httpapi
