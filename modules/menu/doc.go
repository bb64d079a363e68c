// Package menu manages sellable menu items: limit-gated creation, the
// active-item counter, margin decoration on reads and the menu
// profitability report.
package menu
