// Package listview provides a scrolling row list for Bubble Tea models.
//
// Only the rows inside the viewport are rendered, so a page of any size stays
// cheap to draw. The list handles up/down, pgup/pgdn, home/end and j/k, and
// keeps the selected row visible after every move or resize.
package listview
