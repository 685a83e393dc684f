// Package hcl_adapter is the HCL implementation of config.Loader.
//
// A model file holds three kinds of top-level blocks:
//
//	define "n" {
//	  value = "3"
//	}
//
//	node "cell{1:@n}" {
//	  x = "$(@1 * 2)"
//	}
//
//	edge "link{1:2}" {
//	  from = "cell@1"
//	  to   = "cell$(@1 + 1)"
//	  flow = "@0"
//	}
//
// Block labels and attribute values are kept verbatim as config.Text; node
// attributes become properties and edge attributes other than from and to
// become equations, both in source order.
package hcl_adapter
