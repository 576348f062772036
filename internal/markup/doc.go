// Package markup reads tree documents written in HCL.
//
// Every block is an element: the block type is the element's local name and
// an optional single label becomes its "id" attribute. Attributes become raw
// string values; lists of scalars are joined with spaces and objects are
// rendered back to HCL expression text for the Object converter. An "xmlns"
// attribute sets the namespace of the block and everything nested in it.
// A nested "components" block lists extra components for its parent element.
//
//	scene "main" {
//	  xmlns = "gl"
//	  mesh {
//	    position = [0, 1, 0]
//	    components {
//	      Rotator { speed = 2 }
//	    }
//	  }
//	}
package markup
