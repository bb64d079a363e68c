// Package ingredient manages tenant ingredients: CRUD with soft
// deletion, the active-ingredient counter feeding limit checks, and
// limit-gated creation.
package ingredient
