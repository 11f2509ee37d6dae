// Package gravtree implements a three-dimensional N-body gravitational
// simulator built on a Barnes-Hut k-d tree. See pkg/kdtree for the tree
// and time-step driver, pkg/body for the spatial data model, and
// pkg/response for built-in response rules.
package gravtree
