// Package ctfe resolves component compositions at compile time.
//
// A call to an imported component function inside markup,
//
//	${Button({ label: "Save", count: this.n() })}
//
// is replaced with the element that function would have produced at
// runtime,
//
//	<x-button label="Save" count="${this.n()}"></x-button>
//
// after locating the component's module through the file's imports and
// reading the tag it registers. Route table entries whose page is loaded
// through a dynamic import gain a selector field naming the page's tag:
//
//	{ path: "/", loadComponent: () => import("./home") }
//	{ selector: '<app-home></app-home>', path: "/", loadComponent: () => import("./home") }
//
// Anything that cannot be resolved statically is left untouched and
// reported as a warning. Module sources are read from an fs.FS and kept in
// a Cache that may be shared between evaluations; clearing it never
// changes the output.
package ctfe
