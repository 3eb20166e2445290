// Package dom holds the page flashdeck renders into: an HTML document parsed
// with golang.org/x/net/html and kept in memory.
//
// Elements are addressed by id the way a browser script addresses them.
// Input values live beside the tree, like DOM properties, so they are never
// serialised by Render.
package dom
