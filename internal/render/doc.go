// Package render draws body snapshots into a terminal canvas.
//
// It sits entirely outside the simulation core: it reads copies of the body
// set and never writes back.
//
//   - [Canvas]: Braille-based pixel canvas, two by four dots per cell
//   - [Viewport]: maps world metres to canvas dots
//   - [Scene]: viewport, trails and the name-keyed [Style] table together
//
// Display scale and styles never reach the physics.
package render
