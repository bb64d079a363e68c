// Package recipe manages tenant recipes and their ingredient lines,
// including limit-gated creation, the active-recipe counter, and recipe
// cost reporting built on the costing package.
package recipe
