// Package logfields defines common logging fields which are used across packages
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// Kind is the flavour of stream feeding a binding (observable or flowable)
	Kind = "kind"

	// BindingID is the process-unique identifier of a binding
	BindingID = "bindingID"

	// Lazy is set when a binding subscribes on first read
	Lazy = "lazy"

	// Count is a number of items, e.g. disposed members of a group
	Count = "count"
)
