// Package chart implements the chart view lifecycle: each View owns one
// visualization, its own filter selection and dropdowns, and a diff-render
// Surface. On every change the view filters the full record set, lets its
// Dimension aggregate and lay out the result, and renders the new frame
// against the previously retained one.
package chart
