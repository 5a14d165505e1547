// Package bindc compiles reactive html templates into static markup plus
// the binding calls that keep it current.
//
// A component template such as
//
//	render() {
//		return html`<span>${this.count()}</span>`;
//	}
//
// is rewritten at build time into
//
//	render() {
//		return {
//			template: `<span id="r0">0</span>`,
//			initializeBindings: (root) => {
//				bindText(root, this.count, "r0");
//			},
//		};
//	}
//
// so the runtime never parses markup or searches for reactive reads. The
// needed binding primitives are imported from the runtime module.
//
// Compile is a pure text-to-text transform. When it cannot improve a file
// it returns the source unchanged with Changed false.
package bindc
