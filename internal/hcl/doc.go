// Package hcl provides the HCL implementation of the config.Loader
// interface. It lets an organism graph be described with HCL blocks as an
// alternative to the line-oriented graph language:
//
//	component "power" "power1" {}
//
//	connect {
//	  from = "power1.atp_out"
//	  to   = "metabolism1.atp_in"
//	}
//
//	set "power1.glucose_in" {
//	  value = 10
//	}
//
// Blocks are translated, in source order, into the same config.Graph the
// graph language produces. `set` values are arbitrary HCL expressions that
// must evaluate to a finite number.
package hcl
