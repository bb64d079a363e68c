// Package costing contains the pure arithmetic behind recipe costs and
// menu item margins: ingredient cost roll-ups, cost per serving,
// food-cost percentage, margin and recommended selling price.
//
// All formulas guard their denominators. Callers never need to check for
// division by zero; impossible metrics come back as zero values or nil
// pointers instead.
package costing
