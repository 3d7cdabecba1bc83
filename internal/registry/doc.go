// Package registry provides the central "glue" for the module system.
//
// The Registry maps the type names used in graph descriptions (e.g.
// "power" in `COMPONENT p FROM power`) to the compiled Go factories that
// construct the corresponding component variants. Each built-in variant
// lives in its own package under modules/ and contributes its factory by
// implementing the Module interface.
//
// A Registry belongs to one application instance; there is no process-wide
// registry.
package registry
