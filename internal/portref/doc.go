// internal/portref/doc.go

/*
Package portref provides a structured representation for references to a
single port of a component, based on the canonical format `component.port`.

Graph descriptions (both the line-oriented language and HCL) address ports
this way, e.g. `power1.atp_out`. This package centralizes parsing and
formatting so every loader accepts and rejects exactly the same spellings.
*/
package portref
